// analyze imprime el análisis de stock a partir de exportaciones CSV locales y guarda el
// resumen por producto.
//
// Uso: go run ./cmd/analyze --products Products.csv --stock-in Stock_In.csv --stock-out Stock_Out.csv
// Cada flag también se lee de su variable de entorno (ANALYZE_PRODUCTS_CSV, ANALYZE_STOCK_IN_CSV,
// ANALYZE_STOCK_OUT_CSV, etc.; se carga .env si existe).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jhoicas/cmi-stock/internal/application/reconcile"
	"github.com/jhoicas/cmi-stock/internal/domain/analytics"
	"github.com/jhoicas/cmi-stock/internal/domain/fields"
	"github.com/jhoicas/cmi-stock/internal/domain/repository"
	"github.com/jhoicas/cmi-stock/internal/infrastructure/sheets"
	"github.com/jhoicas/cmi-stock/internal/interfaces/report"
	"github.com/jhoicas/cmi-stock/pkg/logger"
)

// Claves de entorno enlazadas a cada flag. El flag explícito gana sobre la variable.
const (
	keyProducts   = "ANALYZE_PRODUCTS_CSV"
	keyStockIn    = "ANALYZE_STOCK_IN_CSV"
	keyStockOut   = "ANALYZE_STOCK_OUT_CSV"
	keyOrders     = "ANALYZE_SALES_ORDERS_CSV"
	keyQuotations = "ANALYZE_QUOTATIONS_CSV"
	keyAliases    = "FIELD_ALIASES_FILE"
	keyOutput     = "ANALYZE_OUTPUT_CSV"
	keyLogLevel   = "LOG_LEVEL"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:          "analyze",
		Short:        "Análisis de stock desde exportaciones CSV",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, v)
		},
	}
	f := cmd.Flags()
	f.String("products", "CMI Solar Stock - Products.csv", "CSV del maestro de productos")
	f.String("stock-in", "CMI Solar Stock - Stock_In.csv", "CSV de entradas")
	f.String("stock-out", "CMI Solar Stock - Stock_Out.csv", "CSV de salidas")
	f.String("orders", "", "CSV de órdenes de venta (opcional)")
	f.String("quotations", "", "CSV de cotizaciones (opcional)")
	f.String("aliases", "", "YAML de alias de columnas (opcional)")
	f.StringP("out", "o", "stock_analysis_summary.csv", "archivo CSV de resumen")
	f.String("log-level", "warn", "nivel de log (stderr)")

	for key, name := range map[string]string{
		keyProducts:   "products",
		keyStockIn:    "stock-in",
		keyStockOut:   "stock-out",
		keyOrders:     "orders",
		keyQuotations: "quotations",
		keyAliases:    "aliases",
		keyOutput:     "out",
		keyLogLevel:   "log-level",
	} {
		_ = v.BindPFlag(key, f.Lookup(name))
	}
	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper) error {
	log := logger.New(logger.Config{Env: "development", Level: v.GetString(keyLogLevel), Output: cmd.ErrOrStderr()})

	schemas, err := fields.LoadSchemas(v.GetString(keyAliases))
	if err != nil {
		return err
	}

	snap := &repository.Snapshot{}
	streams := []struct {
		path     string
		dst      *[]fields.Record
		required bool
	}{
		{v.GetString(keyProducts), &snap.Products, true},
		{v.GetString(keyStockIn), &snap.StockIn, true},
		{v.GetString(keyStockOut), &snap.StockOut, true},
		{v.GetString(keyOrders), &snap.SalesOrders, false},
		{v.GetString(keyQuotations), &snap.Quotations, false},
	}
	for _, s := range streams {
		if s.path == "" && !s.required {
			continue
		}
		recs, err := readCSV(s.path)
		if err != nil {
			return err
		}
		*s.dst = recs
		log.Debug().Str("file", s.path).Int("rows", len(recs)).Msg("csv leído")
	}

	res := reconcile.Compute(reconcile.NewMapper(schemas), snap, analytics.Options{})
	for kind, n := range res.Diagnostics.Counts() {
		log.Info().Str("kind", string(kind)).Int("count", n).Msg("diagnósticos")
	}

	out := cmd.OutOrStdout()
	if err := report.WriteText(out, res); err != nil {
		return fmt.Errorf("escribir informe: %w", err)
	}

	output := v.GetString(keyOutput)
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("crear %s: %w", output, err)
	}
	defer f.Close()
	if err := report.WriteSummaryCSV(f, res); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n💾 บันทึกผลการวิเคราะห์ไปที่: %s\n", output)
	return nil
}

func readCSV(path string) ([]fields.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()
	recs, err := sheets.ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}
