package acquity

import (
	"fmt"
	"strconv"
	"strings"
)

// InjectionMetadata describes the injection the chromatogram belongs to.
// Numeric fields are nil when absent or unparseable.
type InjectionMetadata struct {
	DataVault         string
	Injection         string
	InjectionNumber   *int
	Position          string
	Comment           string
	ProcessingMethod  string
	InstrumentMethod  string
	InjectionType     string
	Status            string
	InjectionDate     string
	InjectionTime     string
	InjectionVolumeUL *float64
	DilutionFactor    *float64
	Weight            *float64
}

// ChromatogramMetadata describes the acquisition of the signal.
type ChromatogramMetadata struct {
	MinTime              *float64
	MaxTime              *float64
	DataPoints           *int
	Detector             string
	GeneratingDataSystem string
	ExportingDataSystem  string
	Operator             string
	SignalQuantity       string
	SignalUnit           string
	SignalMin            *float64
	SignalMax            *float64
	Channel              string
	DriverName           string
	ChannelType          string
	MinStepSeconds       *float64
	MaxStepSeconds       *float64
	AvgStepSeconds       *float64
}

// SignalMetadata holds the free-form signal description.
type SignalMetadata struct {
	Info string
}

// setter stores a raw metadata value into an Export.
type setter func(e *Export, raw string) error

func text(field func(*Export) *string) setter {
	return func(e *Export, raw string) error {
		*field(e) = raw
		return nil
	}
}

func number(field func(*Export) **float64) setter {
	return func(e *Export, raw string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return err
		}
		*field(e) = &v
		return nil
	}
}

func integer(field func(*Export) **int) setter {
	return func(e *Export, raw string) error {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		*field(e) = &v
		return nil
	}
}

// metadataSetters maps export keys to the field they fill.
var metadataSetters = map[string]setter{
	// Injection.
	"Data Vault":            text(func(e *Export) *string { return &e.Injection.DataVault }),
	"Injection":             text(func(e *Export) *string { return &e.Injection.Injection }),
	"Injection Number":      integer(func(e *Export) **int { return &e.Injection.InjectionNumber }),
	"Position":              text(func(e *Export) *string { return &e.Injection.Position }),
	"Comment":               text(func(e *Export) *string { return &e.Injection.Comment }),
	"Processing Method":     text(func(e *Export) *string { return &e.Injection.ProcessingMethod }),
	"Instrument Method":     text(func(e *Export) *string { return &e.Injection.InstrumentMethod }),
	"Injection Type":        text(func(e *Export) *string { return &e.Injection.InjectionType }),
	"Status":                text(func(e *Export) *string { return &e.Injection.Status }),
	"Injection Date":        text(func(e *Export) *string { return &e.Injection.InjectionDate }),
	"Injection Time":        text(func(e *Export) *string { return &e.Injection.InjectionTime }),
	"Injection Volume (µL)": number(func(e *Export) **float64 { return &e.Injection.InjectionVolumeUL }),
	"Dilution Factor":       number(func(e *Export) **float64 { return &e.Injection.DilutionFactor }),
	"Weight":                number(func(e *Export) **float64 { return &e.Injection.Weight }),

	// Chromatogram.
	"Time Min. (min)":        number(func(e *Export) **float64 { return &e.Chromatogram.MinTime }),
	"Time Max. (min)":        number(func(e *Export) **float64 { return &e.Chromatogram.MaxTime }),
	"Data Points":            integer(func(e *Export) **int { return &e.Chromatogram.DataPoints }),
	"Detector":               text(func(e *Export) *string { return &e.Chromatogram.Detector }),
	"Generating Data System": text(func(e *Export) *string { return &e.Chromatogram.GeneratingDataSystem }),
	"Exporting Data System":  text(func(e *Export) *string { return &e.Chromatogram.ExportingDataSystem }),
	"Operator":               text(func(e *Export) *string { return &e.Chromatogram.Operator }),
	"Signal Quantity":        text(func(e *Export) *string { return &e.Chromatogram.SignalQuantity }),
	"Signal Unit":            text(func(e *Export) *string { return &e.Chromatogram.SignalUnit }),
	"Signal Min.":            number(func(e *Export) **float64 { return &e.Chromatogram.SignalMin }),
	"Signal Max.":            number(func(e *Export) **float64 { return &e.Chromatogram.SignalMax }),
	"Channel":                text(func(e *Export) *string { return &e.Chromatogram.Channel }),
	"Driver Name":            text(func(e *Export) *string { return &e.Chromatogram.DriverName }),
	"Channel Type":           text(func(e *Export) *string { return &e.Chromatogram.ChannelType }),
	"Min. Step (s)":          number(func(e *Export) **float64 { return &e.Chromatogram.MinStepSeconds }),
	"Max. Step (s)":          number(func(e *Export) **float64 { return &e.Chromatogram.MaxStepSeconds }),
	"Average Step (s)":       number(func(e *Export) **float64 { return &e.Chromatogram.AvgStepSeconds }),

	// Signal.
	"Signal Info": text(func(e *Export) *string { return &e.Signal.Info }),
}

// setMetadata applies one key/value pair. Unknown keys are ignored;
// unparseable values leave the field unset and are recorded as warnings.
func (e *Export) setMetadata(line int, key, value string) {
	set, ok := metadataSetters[key]
	if !ok {
		return
	}
	if err := set(e, value); err != nil {
		e.Warnings = append(e.Warnings, fmt.Sprintf("line %d: %s: %v", line, key, err))
	}
}
