// Package timeseries provides the Series type used by the estimation engine.
//
// A Series carries its values, optional timestamps and the seasonal
// frequency. Missing observations are stored as NaN and exact zeros are
// kept, since zeros drive intermittent-demand modelling.
//
// # Creating a Series
//
//	series := timeseries.NewWithFrequency([]float64{112, 118, 132, 129}, 12)
//
// # Loading from CSV
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.ValueColumn = "demand"
//	opts.Frequency = 7
//	opts.KeepMissing = true // NA cells become NaN
//	series, err := timeseries.LoadCSV("sales.csv", opts)
//
// # Holdout
//
// Split off the last h observations for out-of-sample evaluation:
//
//	train, test, err := series.Split(12)
package timeseries
