// Package cmd provides the CLI commands for the storage price estimator.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"storage-price-estimator/internal/adapters/primary/http/dto"
	"storage-price-estimator/internal/config"
	"storage-price-estimator/internal/core/domain"
	"storage-price-estimator/internal/core/pricing"
	"storage-price-estimator/internal/core/services"
	"storage-price-estimator/internal/logging"
)

type options struct {
	permanent bool
	basePrice string
	bytePrice string
	output    string
	verbose   bool
}

// Execute runs the CLI
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "quote <file>",
		Short: "Estimate the storage price of a file",
		Long: `quote previews the price of storing a file before a storage order is placed.

The price is (basePrice + ceil(size/1024) * bytePrice) microAlgos, multiplied
by the permanent multiplier for permanent storage.

Examples:
  quote ./photo.jpg
  quote --permanent ./archive.tar
  quote --base-price 100000 --byte-price 50 --output json ./data.bin
  quote defaults`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if opts.verbose {
				cfg.Logger.Level = "debug"
			}
			logging.Init(cfg.Logger)
			logging.SetOutput(cmd.ErrOrStderr())
			cmd.SetContext(withConfig(cmd.Context(), cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuote(cmd, opts, args[0])
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "output format (text, json)")
	rootCmd.Flags().BoolVarP(&opts.permanent, "permanent", "p", false, "price permanent storage")
	rootCmd.Flags().StringVar(&opts.basePrice, "base-price", "", "flat fee in microAlgos (default from PRICING_BASE_PRICE)")
	rootCmd.Flags().StringVar(&opts.bytePrice, "byte-price", "", "fee per kilobyte in microAlgos (default from PRICING_BYTE_PRICE)")

	rootCmd.AddCommand(newDefaultsCmd(opts))
	return rootCmd
}

func runQuote(cmd *cobra.Command, opts *options, path string) error {
	cfg, err := configFrom(cmd.Context())
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	size := info.Size()

	in := services.QuoteInput{FileSize: &size, IsPermanent: opts.permanent}
	if opts.basePrice != "" {
		in.BasePrice = opts.basePrice
	}
	if opts.bytePrice != "" {
		in.BytePrice = opts.bytePrice
	}

	svc := services.NewQuoteService(pricing.NewEngine(), cfg.Pricing.Rates())
	quote, err := svc.Quote(cmd.Context(), in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.output == "json" {
		return writeJSON(out, dto.ToQuoteResponse(quote))
	}
	printQuote(out, path, quote)
	return nil
}

func newDefaultsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the configured pricing defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd.Context())
			if err != nil {
				return err
			}
			rates := cfg.Pricing.Rates()
			out := cmd.OutOrStdout()

			if opts.output == "json" {
				return writeJSON(out, dto.ToDefaultsResponse(rates, cfg.Pricing.MaxUploadBytes))
			}
			fmt.Fprintf(out, "Base price:            %d microAlgos\n", rates.BasePrice)
			fmt.Fprintf(out, "Byte price:            %d microAlgos/KB\n", rates.BytePrice)
			fmt.Fprintf(out, "Permanent multiplier:  %sx\n", rates.PermanentMultiplier)
			fmt.Fprintf(out, "Max upload size:       %s\n", FormatFileSize(cfg.Pricing.MaxUploadBytes))
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printQuote(w io.Writer, path string, q *domain.PriceQuote) {
	storage := "Temporary"
	if q.IsPermanent {
		storage = "Permanent"
	}

	fmt.Fprintf(w, "File:                  %s\n", path)
	fmt.Fprintf(w, "File size:             %s (%d bytes)\n", FormatFileSize(q.SizeBytes), q.SizeBytes)
	fmt.Fprintf(w, "Storage type:          %s\n", storage)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Base price:            %d microAlgos\n", q.BasePrice)
	fmt.Fprintf(w, "Byte cost:             %d KB x %d = %s microAlgos\n", q.SizeInKB, q.BytePrice, q.ByteCost)
	fmt.Fprintf(w, "Base total:            %s microAlgos\n", q.BaseTotal)
	fmt.Fprintf(w, "Multiplier:            %sx\n", q.EffectiveMultiplier)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Price:                 %s microAlgos\n", q.TotalPrice)
	fmt.Fprintf(w, "Price:                 %s Algos\n", q.TotalPriceScaled.StringFixed(6))
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatFileSize renders bytes with binary units and up to two decimals.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) + " " + sizeUnits[i]
}

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(ctx context.Context) (*config.Config, error) {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg, nil
	}
	return config.Load()
}
