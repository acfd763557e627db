// Command tablefor renders CSV files, Excel sheets
// or SQL query results as HTML tables.
//
// Usage:
//
//	tablefor -in posts.csv -actions show,edit
//	tablefor -in blog.xlsx -sheet Posts -fields title,body
//	tablefor -driver sqlite -dsn blog.db -model post -query "SELECT * FROM posts"
//	tablefor -driver pgx -dsn postgres://localhost/blog -model post -query "SELECT * FROM posts" -namespace admin
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	fs "github.com/ungerik/go-fs"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/domonda/go-tablefor"
	"github.com/domonda/go-tablefor/csvtable"
	"github.com/domonda/go-tablefor/exceltable"
	"github.com/domonda/go-tablefor/htmltable"
	"github.com/domonda/go-tablefor/sqltable"
)

type options struct {
	in         string
	sheet      string
	separator  string
	encoding   string
	driver     string
	dsn        string
	query      string
	model      string
	configFile string
	fields     string
	actions    string
	namespace  string
	caption    string
	out        string
}

func main() {
	var (
		opts    options
		verbose = flag.Bool("v", false, "Verbose debug logging")
	)
	flag.StringVar(&opts.in, "in", "", "Input CSV or Excel file")
	flag.StringVar(&opts.sheet, "sheet", "", "Excel sheet name (default first sheet)")
	flag.StringVar(&opts.separator, "separator", "", "CSV separator (default detected)")
	flag.StringVar(&opts.encoding, "encoding", "", "CSV encoding (default detected)")
	flag.StringVar(&opts.driver, "driver", "sqlite", "SQL driver: sqlite or pgx")
	flag.StringVar(&opts.dsn, "dsn", "", "SQL data source name, reads -query results if set")
	flag.StringVar(&opts.query, "query", "", "SQL query")
	flag.StringVar(&opts.model, "model", "", "Singular model name of the SQL records")
	flag.StringVar(&opts.configFile, "config", "", "YAML table config file")
	flag.StringVar(&opts.fields, "fields", "", "Comma separated fields to display (default all)")
	flag.StringVar(&opts.actions, "actions", "", "Comma separated actions: show, edit, destroy or all")
	flag.StringVar(&opts.namespace, "namespace", "", "Namespace of action links")
	flag.StringVar(&opts.caption, "caption", "", "Table caption")
	flag.StringVar(&opts.out, "out", "", "Output HTML file (default stdout)")
	flag.Parse()

	if opts.in == "" && opts.dsn == "" {
		fmt.Fprintln(os.Stderr, "Usage: tablefor -in <file.csv|file.xlsx> [-fields a,b] [-actions show,edit,destroy]")
		fmt.Fprintln(os.Stderr, "       tablefor -driver <sqlite|pgx> -dsn <dsn> -model <name> -query <sql>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	var (
		logger *zap.Logger
		err    error
	)
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, logger, &opts); err != nil {
		logger.Error("Rendering table failed", zap.Error(err))
		stop()
		logger.Sync() //nolint:errcheck
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *zap.Logger, opts *options) error {
	config := tablefor.DefaultConfig()
	if opts.configFile != "" {
		var err error
		config, err = tablefor.LoadConfigFile(fs.File(opts.configFile))
		if err != nil {
			return err
		}
	}
	config = config.WithLogger(logger)

	records, err := loadRecords(ctx, opts)
	if err != nil {
		return err
	}
	logger.Info("Loaded records",
		zap.String("model", records.Model().Name()),
		zap.Int("records", records.Len()),
	)

	block, err := dataBlock(opts)
	if err != nil {
		return err
	}
	table, err := tablefor.Build(ctx, records, config, block)
	if err != nil {
		return err
	}

	writer := htmltable.NewWriter().WithCaption(opts.caption)
	if opts.out == "" {
		return writer.Write(ctx, os.Stdout, table)
	}
	return writeFile(ctx, opts.out, writer, table)
}

func writeFile(ctx context.Context, filename string, writer *htmltable.Writer, table *tablefor.Table) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()
	return writer.Write(ctx, file, table)
}

func loadRecords(ctx context.Context, opts *options) (*tablefor.Records, error) {
	if opts.dsn != "" {
		if opts.query == "" || opts.model == "" {
			return nil, errors.New("-query and -model are required with -dsn")
		}
		db, err := sql.Open(opts.driver, opts.dsn)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return sqltable.QueryRecords(ctx, db, opts.model, opts.query)
	}

	file := fs.File(opts.in)
	switch ext := strings.ToLower(path.Ext(file.Name())); ext {
	case ".csv", ".tsv", ".txt":
		var format *csvtable.Format
		if opts.separator != "" || opts.encoding != "" {
			format = &csvtable.Format{Encoding: opts.encoding, Separator: opts.separator}
		}
		return csvtable.ReadFile(file, format)

	case ".xlsx", ".xlsm", ".xltm", ".xltx":
		sheets, err := exceltable.ReadFile(file, false)
		if err != nil {
			return nil, err
		}
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s has no sheet with data", exceltable.ErrEmptySheet, file.Name())
		}
		if opts.sheet == "" {
			return sheets[0], nil
		}
		for _, records := range sheets {
			if records.Model().Name() == tablefor.ModelName(opts.sheet) {
				return records, nil
			}
		}
		return nil, exceltable.ErrSheetNotExist{SheetName: opts.sheet}

	default:
		return nil, fmt.Errorf("unsupported input file type %q", ext)
	}
}

func dataBlock(opts *options) (tablefor.BlockFunc, error) {
	var dataOpts []tablefor.DataOption
	if fields := splitList(opts.fields); len(fields) > 0 {
		dataOpts = append(dataOpts, tablefor.Fields(fields...))
	}
	var actions []tablefor.Action
	for _, name := range splitList(opts.actions) {
		action, err := tablefor.ParseAction(name)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}
	if len(actions) > 0 {
		dataOpts = append(dataOpts, tablefor.Actions(actions...))
	}
	if opts.namespace != "" {
		dataOpts = append(dataOpts, tablefor.ActionPrefix(tablefor.Namespace(opts.namespace)))
	}
	return func(t *tablefor.TableBuilder) error {
		return t.Data(dataOpts...)
	}, nil
}

func splitList(list string) []string {
	var items []string
	for item := range strings.SplitSeq(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
