package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/smallbiznis/fbrinvoice/internal/clock"
	"github.com/smallbiznis/fbrinvoice/internal/config"
	"github.com/smallbiznis/fbrinvoice/internal/docstore/backends"
	"github.com/smallbiznis/fbrinvoice/internal/invoice"
	invoicedomain "github.com/smallbiznis/fbrinvoice/internal/invoice/domain"
	"github.com/smallbiznis/fbrinvoice/internal/invoice/export"
	"github.com/smallbiznis/fbrinvoice/internal/invoice/format"
	"github.com/smallbiznis/fbrinvoice/internal/observability"
	"github.com/smallbiznis/fbrinvoice/internal/observability/logger"
	"github.com/smallbiznis/fbrinvoice/internal/providers"
	"github.com/smallbiznis/fbrinvoice/internal/providers/pdf"
	"github.com/smallbiznis/fbrinvoice/internal/seed"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "invoicectl",
		Usage: "inspect and maintain stored FBR invoices",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "timeout", Value: 30 * time.Second, Usage: "overall command timeout"},
		},
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list every stored invoice",
				Flags: []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "print JSON instead of a table"}},
				Action: withService(func(c *cli.Context, d deps) error {
					records, err := d.invoices.List(c.Context)
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return writeJSON(c.App.Writer, records)
					}
					return writeTable(c.App.Writer, records)
				}),
			},
			{
				Name:      "show",
				Usage:     "print one invoice as JSON",
				ArgsUsage: "<id>",
				Action: withService(func(c *cli.Context, d deps) error {
					rec, err := d.invoices.Get(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					return writeJSON(c.App.Writer, rec)
				}),
			},
			{
				Name:      "create",
				Usage:     "store an invoice read from a JSON file (\"-\" for stdin)",
				ArgsUsage: "<file>",
				Action: withService(func(c *cli.Context, d deps) error {
					rec, err := readRecord(c.Args().First(), c.App.Reader)
					if err != nil {
						return err
					}
					saved, err := d.invoices.Create(c.Context, rec)
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, saved.ID)
					return nil
				}),
			},
			{
				Name:      "delete",
				Usage:     "delete one invoice",
				ArgsUsage: "<id>",
				Action: withService(func(c *cli.Context, d deps) error {
					id := c.Args().First()
					if err := d.invoices.Delete(c.Context, id); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "deleted %s\n", id)
					return nil
				}),
			},
			{
				Name:  "export",
				Usage: "write the invoice list as XLSX, or one invoice as PDF with --id",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default derived from the invoice)"},
					&cli.StringFlag{Name: "id", Usage: "render this invoice as PDF"},
					&cli.StringFlag{Name: "name-template", Value: format.DefaultDocumentNameTemplate, Usage: "PDF file name template"},
				},
				Action: withService(exportAction),
			},
			{
				Name:  "seed",
				Usage: "store sample invoices",
				Flags: []cli.Flag{&cli.IntFlag{Name: "count", Value: 3, Usage: "number of invoices"}},
				Action: withService(func(c *cli.Context, d deps) error {
					ids, err := seed.Invoices(c.Context, d.invoices, c.Int("count"), d.clock.Now())
					for _, id := range ids {
						fmt.Fprintln(c.App.Writer, id)
					}
					return err
				}),
			},
			{
				Name:  "blank",
				Usage: "print a blank invoice template as JSON",
				Action: func(c *cli.Context) error {
					return writeJSON(c.App.Writer, invoicedomain.BlankRecord())
				},
			},
		},
	}
}

type deps struct {
	invoices invoicedomain.Service
	pdf      pdf.Provider
	clock    clock.Clock
}

// withService starts the document store and invoice service for one command
// and stops them afterwards. Logs go to stderr so command output stays clean.
func withService(fn func(*cli.Context, deps) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		var d deps
		app := fx.New(
			config.Module,
			observability.Module,
			backends.Module,
			invoice.Module,
			providers.Module,
			clock.Module,
			fx.Decorate(func(cfg logger.Config) logger.Config {
				cfg.OutputPaths = []string{"stderr"}
				if !cfg.Debug {
					cfg.Level = "warn"
				}
				return cfg
			}),
			fx.Populate(&d.invoices, &d.pdf, &d.clock),
			fx.NopLogger,
		)

		ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
		defer cancel()
		if err := app.Start(ctx); err != nil {
			return err
		}
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer stopCancel()
			_ = app.Stop(stopCtx)
		}()

		c.Context = ctx
		return fn(c, d)
	}
}

func exportAction(c *cli.Context, d deps) error {
	if id := strings.TrimSpace(c.String("id")); id != "" {
		rec, err := d.invoices.Get(c.Context, id)
		if err != nil {
			return err
		}
		doc, err := d.pdf.GenerateInvoice(c.Context, rec)
		if err != nil {
			return err
		}
		out := c.String("out")
		if out == "" {
			name, err := format.FormatDocumentName(c.String("name-template"), rec, d.clock.Now())
			if err != nil {
				return err
			}
			out = name + ".pdf"
		}
		return writeFile(out, func(w io.Writer) error {
			_, err := io.Copy(w, doc)
			return err
		})
	}

	records, err := d.invoices.List(c.Context)
	if err != nil {
		return err
	}
	out := c.String("out")
	if out == "" {
		out = "invoices-" + d.clock.Now().Format("20060102") + ".xlsx"
	}
	return writeFile(out, func(w io.Writer) error {
		return export.WriteXLSX(w, records)
	})
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func readRecord(path string, stdin io.Reader) (invoicedomain.Record, error) {
	var rec invoicedomain.Record
	var r io.Reader
	switch strings.TrimSpace(path) {
	case "":
		return rec, errors.New("missing input file")
	case "-":
		r = stdin
	default:
		f, err := os.Open(path)
		if err != nil {
			return rec, err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return rec, fmt.Errorf("decode invoice: %w", err)
	}
	rec.ID = ""
	return rec, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, records []invoicedomain.Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tDATE\tSELLER\tBUYER\tREF\tITEMS")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			rec.ID,
			rec.InvoiceType,
			invoicedomain.NormalizeDate(rec.InvoiceDate),
			rec.SellerBusinessName,
			rec.BuyerBusinessName,
			rec.InvoiceRefNo,
			len(rec.Items),
		)
	}
	return tw.Flush()
}
