package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gyeh/pricebench/internal/exitcode"
)

var demoDir string

var mkdemoCmd = &cobra.Command{
	Use:   "mkdemo",
	Short: "Generate a small demo corpus with matching catalogs",
	Long:  "Writes a narrow-format demo price file plus hospital and procedure catalogs, enough to exercise the full pipeline without downloading real files.",
	RunE:  runMkdemo,
}

func init() {
	mkdemoCmd.Flags().StringVar(&demoDir, "dir", "data/demo", "Directory for demo files")
	rootCmd.AddCommand(mkdemoCmd)
}

var demoPrices = [][]string{
	{"hospital_name", "payer_name", "code", "code_type", "description", "negotiated_rate"},
	{"PeaceHealth St. Joseph Medical Center", "Premera", "27447", "CPT", "Total knee arthroplasty", "28000"},
	{"PeaceHealth St. Joseph Medical Center", "Aetna", "27447", "CPT", "Total knee arthroplasty", "32500"},
	{"Skagit Valley Hospital", "Premera", "27447", "CPT", "Total knee arthroplasty", "24500"},
	{"Providence Regional Medical Center Everett", "Premera", "27447", "CPT", "Total knee arthroplasty", "37100"},
	{"PeaceHealth St. Joseph Medical Center", "Regence", "45378", "CPT", "Colonoscopy diagnostic", "2600"},
	{"Swedish Edmonds Campus", "Regence", "45378", "CPT", "Colonoscopy diagnostic", "1900"},
	{"UW Medical Center Northwest Campus", "Aetna", "45378", "CPT", "Colonoscopy diagnostic", "4200"},
	{"Cascade Valley Hospital", "Aetna", "47562", "CPT", "Laparoscopic cholecystectomy", "10800"},
	{"PeaceHealth St. Joseph Medical Center", "Aetna", "47562", "CPT", "Laparoscopic cholecystectomy", "14900"},
	{"Skagit Valley Hospital", "Regence", "47562", "CPT", "Laparoscopic cholecystectomy", "9800"},
}

var demoHospitals = [][]string{
	{"hospital_name"},
	{"PeaceHealth St. Joseph Medical Center"},
	{"Skagit Valley Hospital"},
	{"Providence Regional Medical Center Everett"},
	{"Swedish Edmonds Campus"},
	{"UW Medical Center Northwest Campus"},
	{"Cascade Valley Hospital"},
}

var demoProcedures = [][]string{
	{"code", "code_type", "description"},
	{"27447", "CPT", "Total knee arthroplasty"},
	{"45378", "CPT", "Colonoscopy diagnostic"},
	{"47562", "CPT", "Laparoscopic cholecystectomy"},
}

func runMkdemo(cmd *cobra.Command, args []string) error {
	rawDir := filepath.Join(demoDir, "raw")
	if err := os.MkdirAll(rawDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create demo dir: %v\n", err)
		os.Exit(exitcode.UsageError)
	}

	files := []struct {
		path string
		rows [][]string
	}{
		{filepath.Join(rawDir, "demo_prices.csv"), demoPrices},
		{filepath.Join(demoDir, "hospitals.csv"), demoHospitals},
		{filepath.Join(demoDir, "procedures.csv"), demoProcedures},
	}
	for _, df := range files {
		if err := writeDemoCSV(df.path, df.rows); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", df.path, err)
			os.Exit(exitcode.PipelineError)
		}
		fmt.Printf("Wrote %s\n", df.path)
	}

	fmt.Println()
	fmt.Println("Next step:")
	fmt.Printf("  pricebench run --input %s --hospitals %s --procedures %s \\\n",
		rawDir, filepath.Join(demoDir, "hospitals.csv"), filepath.Join(demoDir, "procedures.csv"))
	fmt.Printf("    --focus-hospital \"PeaceHealth St. Joseph Medical Center\" --output %s\n",
		filepath.Join(demoDir, "processed"))
	return nil
}

func writeDemoCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
