package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/gridbook/internal/config"
	"github.com/JonMunkholm/gridbook/internal/logging"
	"github.com/JonMunkholm/gridbook/internal/reader"
	"github.com/JonMunkholm/gridbook/internal/sheet"
	"github.com/JonMunkholm/gridbook/internal/tokenizer"
)

// app holds the flags shared by every command.
type app struct {
	out io.Writer
	cfg *config.Config

	envFile   string
	logLevel  string
	delimiter string
	quote     string
	encoding  string
	header    int
	trailer   int
	footer    int
	class     string
	dir       string
	pattern   string
	sheet     string
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:   "gridbook",
		Short: "Inspect delimited text and workbook files as tables",
		Long: `gridbook reads CSV-like files and XLSX workbooks into sheets.

Each file becomes one sheet named after the file; every worksheet of a
workbook becomes its own sheet. Defaults for the dialect and table layout
come from the environment (CSV_DELIMITER, TABLE_SKIP_HEADER, ...) and can be
overridden with flags.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(out)

	f := root.PersistentFlags()
	f.StringVar(&a.envFile, "env-file", ".env", "dotenv file to load if present")
	f.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (default: LOG_LEVEL or warn)")
	f.StringVarP(&a.delimiter, "delimiter", "d", "", "field delimiter (default: CSV_DELIMITER)")
	f.StringVarP(&a.quote, "quote", "q", "", `quote characters, "none" disables quoting (default: CSV_QUOTE)`)
	f.StringVarP(&a.encoding, "encoding", "e", "", "input encoding (default: CSV_ENCODING)")
	f.IntVar(&a.header, "header", 0, "rows above the column row (default: TABLE_SKIP_HEADER)")
	f.IntVar(&a.trailer, "trailer", 0, "rows between the column row and the data (default: TABLE_SKIP_TRAILER)")
	f.IntVar(&a.footer, "footer", 0, "rows after the data (default: TABLE_SKIP_FOOTER)")
	f.StringVar(&a.class, "class", "", "table class (default: TABLE_CLASS)")
	f.StringVar(&a.dir, "dir", "", "also read matching files below this directory")
	f.StringVar(&a.pattern, "pattern", "", "file pattern used with --dir (default: BOOK_PATTERN)")
	f.StringVarP(&a.sheet, "sheet", "s", "", "only use the sheet with this name")

	root.AddCommand(
		newShowCmd(a),
		newColumnsCmd(a),
		newValidateCmd(a),
		newViewCmd(a),
	)
	return root
}

// setup loads the configuration and applies the flags that were set.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(a.envFile); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// reader progress is logged at info; keep the terminal quiet unless asked
	level := a.logLevel
	if level == "" {
		level = "warn"
		if _, ok := os.LookupEnv("LOG_LEVEL"); ok {
			level = cfg.Logging.Level
		}
	}
	logging.Setup(level, cfg.Logging.Format)

	flags := cmd.Flags()
	if flags.Changed("delimiter") {
		cfg.Reader.Delimiter = a.delimiter
	}
	if flags.Changed("quote") {
		cfg.Reader.Quote = a.quote
	}
	if flags.Changed("encoding") {
		cfg.Reader.Encoding = a.encoding
	}
	if flags.Changed("header") {
		cfg.Reader.SkipHeader = a.header
	}
	if flags.Changed("trailer") {
		cfg.Reader.SkipTrailer = a.trailer
	}
	if flags.Changed("footer") {
		cfg.Reader.SkipFooter = a.footer
	}
	if flags.Changed("class") {
		cfg.Reader.Class = a.class
	}
	if flags.Changed("pattern") {
		cfg.Catalog.BookPattern = a.pattern
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	return nil
}

// loadSheets reads the files named by args and --dir into sheets.
func (a *app) loadSheets(ctx context.Context, args []string) ([]*sheet.Sheet, error) {
	if len(args) == 0 && a.dir == "" {
		return nil, errors.New("no input: pass files or --dir")
	}

	rc := a.cfg.Reader
	br := &reader.BookReader{
		Name:    bookName(args, a.dir),
		Files:   args,
		Dir:     a.dir,
		Pattern: a.cfg.Catalog.BookPattern,
		Params:  rc.Params(),
		Tokenizer: tokenizer.New(
			tokenizer.WithDelimiter(rc.Delimiter),
			tokenizer.WithQuote(rc.QuoteChars()),
		),
		Encoding: rc.Encoding,
	}

	book, ok := br.Read(ctx)
	if !ok {
		return nil, fmt.Errorf("cannot read directory %s", a.dir)
	}
	if book.Len() == 0 {
		return nil, errors.New("no readable input")
	}

	if a.sheet == "" {
		return book.Sheets(), nil
	}
	s := book.Sheet(a.sheet)
	if s == nil {
		return nil, fmt.Errorf("no sheet %q, have %v", a.sheet, book.Names())
	}
	return []*sheet.Sheet{s}, nil
}

func bookName(args []string, dir string) string {
	if len(args) > 0 {
		return reader.SheetName(args[0])
	}
	return filepath.Base(dir)
}
