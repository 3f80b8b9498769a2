package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sartorproj/gosmooth/ssoe"
	"github.com/sartorproj/gosmooth/timeseries"
)

// number is a float that encodes NaN and infinities as JSON null.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	v := float64(n)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
}

func numbers(values []float64) []number {
	if values == nil {
		return nil
	}
	out := make([]number, len(values))
	for i, v := range values {
		out[i] = number(v)
	}
	return out
}

// SeriesSummary describes the input series.
type SeriesSummary struct {
	Length    int    `json:"length"`
	Observed  int    `json:"observed"`
	Zeros     int    `json:"zeros"`
	Frequency int    `json:"frequency"`
	Mean      number `json:"mean"`
	Std       number `json:"std"`
	Min       number `json:"min"`
	Max       number `json:"max"`
}

func summarize(s *timeseries.Series) *SeriesSummary {
	return &SeriesSummary{
		Length:    s.Len(),
		Observed:  s.Observed(),
		Zeros:     s.Observed() - s.NonZero(),
		Frequency: s.Frequency,
		Mean:      number(s.Mean()),
		Std:       number(s.Std()),
		Min:       number(s.Min()),
		Max:       number(s.Max()),
	}
}

// Report is the printable summary of a fit.
type Report struct {
	Series         *SeriesSummary  `json:"series,omitempty"`
	Model          string          `json:"model"`
	Structure      string          `json:"structure"`
	Intermittency  string          `json:"intermittency"`
	Fallback       bool            `json:"fallback,omitempty"`
	Params         ssoe.ParamCount `json:"params"`
	LogLik         number          `json:"loglik"`
	AIC            number          `json:"aic"`
	AICc           number          `json:"aicc"`
	BIC            number          `json:"bic"`
	BICc           number          `json:"bicc"`
	Variance       number          `json:"variance"`
	SpectralRadius number          `json:"spectral_radius"`
	Stable         bool            `json:"stable"`
	Persistence    []number        `json:"persistence"`
	Measurement    []number        `json:"measurement"`
	Forecast       []number        `json:"forecast"`
	Lower          []number        `json:"lower,omitempty"`
	Upper          []number        `json:"upper,omitempty"`
	Level          number          `json:"level,omitempty"`
	LjungBoxPValue *number         `json:"ljung_box_pvalue,omitempty"`
	HoldoutMAE     *number         `json:"holdout_mae,omitempty"`
	HoldoutRMSE    *number         `json:"holdout_rmse,omitempty"`
}

func newReport(res *ssoe.Result) *Report {
	r := &Report{
		Model:          res.Name,
		Structure:      res.Spec.String(),
		Intermittency:  res.Intermittency.String(),
		Fallback:       res.Fallback,
		Params:         res.Params,
		LogLik:         number(res.LogLik),
		Variance:       number(res.Variance),
		SpectralRadius: number(res.SpectralRadius),
		Stable:         res.Stable,
		Persistence:    numbers(res.Persistence),
		Measurement:    numbers(res.Measurement),
		Forecast:       numbers(res.Forecast),
		Lower:          numbers(res.Lower),
		Upper:          numbers(res.Upper),
	}
	if res.Lower != nil {
		r.Level = number(res.Level)
	}
	if ic := res.IC; ic != nil {
		r.AIC, r.AICc, r.BIC, r.BICc = number(ic.AIC), number(ic.AICc), number(ic.BIC), number(ic.BICc)
	}
	if lb := res.LjungBox; lb != nil {
		p := number(lb.PValue)
		r.LjungBoxPValue = &p
	}
	if acc := res.Accuracy; acc != nil {
		mae, rmse := number(acc.MAE), number(acc.RMSE)
		r.HoldoutMAE, r.HoldoutRMSE = &mae, &rmse
	}
	return r
}

func writeReport(w io.Writer, r *Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "table", "":
		return writeTable(w, r)
	}
	return fmt.Errorf("unknown format %q (use table or json)", format)
}

func writeTable(w io.Writer, r *Report) error {
	if s := r.Series; s != nil {
		fmt.Fprintf(w, "Series: %d periods (%d observed, %d zeros)  Mean: %.4f  Std: %.4f  Range: [%.4f, %.4f]\n",
			s.Length, s.Observed, s.Zeros, float64(s.Mean), float64(s.Std), float64(s.Min), float64(s.Max))
	}
	fmt.Fprintf(w, "Model: %s  Intermittency: %s", r.Model, r.Intermittency)
	if r.Fallback {
		fmt.Fprint(w, "  (fallback)")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "AICc: %.4f  BIC: %.4f  Parameters: %d  Stable: %t\n",
		float64(r.AICc), float64(r.BIC), r.Params.Total, r.Stable)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "H\tFORECAST"
	if r.Lower != nil {
		header += "\tLOWER\tUPPER"
	}
	fmt.Fprintln(tw, header)
	fmt.Fprintln(tw, strings.Repeat("-", len(header)+8))
	for i, f := range r.Forecast {
		row := fmt.Sprintf("%d\t%.4f", i+1, float64(f))
		if r.Lower != nil {
			row += fmt.Sprintf("\t%.4f\t%.4f", float64(r.Lower[i]), float64(r.Upper[i]))
		}
		fmt.Fprintln(tw, row)
	}
	return tw.Flush()
}
