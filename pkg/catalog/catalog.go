package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"potato/entities"
)

var ErrEmptyCatalog = errors.New("catalog has no strategies")

// Default returns the built-in strategy catalog in declaration order
// (Premium, Balanced, Budget). Every call returns a fresh copy.
func Default() []entities.StrategyOption {
	return []entities.StrategyOption{
		{
			Name:        "Premium Strategy - Granola",
			SeedAmount:  "60kg",
			Cost:        decimal.NewFromInt(55000),
			Yield:       decimal.NewFromInt(3100),
			Description: "High-quality variety with excellent market value",
			Benefits:    []string{"Best market price", "Disease resistant", "Long shelf life"},
			Icon:        "🌟",
		},
		{
			Name:        "Balanced Strategy - Kufri",
			SeedAmount:  "40kg",
			Cost:        decimal.NewFromInt(48000),
			Yield:       decimal.NewFromInt(2800),
			Description: "Reliable variety with consistent yields",
			Benefits:    []string{"Good resistance", "Moderate cost", "Proven results"},
			Icon:        "⚖️",
		},
		{
			Name:        "Budget Strategy - Local",
			SeedAmount:  "30kg",
			Cost:        decimal.NewFromInt(42000),
			Yield:       decimal.NewFromInt(2400),
			Description: "Cost-effective option for small budgets",
			Benefits:    []string{"Lowest investment", "Local adaptation", "Quick ROI"},
			Icon:        "💰",
		},
	}
}

// Load reads a catalog from a .yaml/.yml, .csv or .xlsx file. An empty path
// yields Default().
func Load(path string) ([]entities.StrategyOption, error) {
	if path == "" {
		return Default(), nil
	}
	var (
		out []entities.StrategyOption
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		out, err = loadYAML(path)
	case ".csv":
		out, err = loadCSV(path)
	case ".xlsx":
		out, err = loadXLSX(path)
	default:
		return nil, fmt.Errorf("catalog %s: unsupported file type", path)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("catalog %s: %w", path, ErrEmptyCatalog)
	}
	return out, nil
}

type yamlEntry struct {
	Name        string   `yaml:"name"`
	SeedAmount  string   `yaml:"seed_amount"`
	Cost        float64  `yaml:"cost"`
	Yield       float64  `yaml:"yield"`
	Description string   `yaml:"description"`
	Benefits    []string `yaml:"benefits"`
	Icon        string   `yaml:"icon"`
}

func loadYAML(path string) ([]entities.StrategyOption, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Strategies []yamlEntry `yaml:"strategies"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	out := make([]entities.StrategyOption, 0, len(doc.Strategies))
	for i, e := range doc.Strategies {
		o := entities.StrategyOption{
			Name:        strings.TrimSpace(e.Name),
			SeedAmount:  strings.TrimSpace(e.SeedAmount),
			Cost:        decimal.NewFromFloat(e.Cost),
			Yield:       decimal.NewFromFloat(e.Yield),
			Description: strings.TrimSpace(e.Description),
			Benefits:    e.Benefits,
			Icon:        e.Icon,
		}
		if err := check(o); err != nil {
			return nil, fmt.Errorf("strategy %d: %w", i+1, err)
		}
		out = append(out, o)
	}
	return out, nil
}

func loadCSV(path string) ([]entities.StrategyOption, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		rows = append(rows, rec)
	}
	return fromRows(rows)
}

func loadXLSX(path string) ([]entities.StrategyOption, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyCatalog
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return fromRows(rows)
}

// fromRows maps a header row plus data rows onto strategies. Header names are
// matched loosely so hand-edited sheets keep working.
func fromRows(rows [][]string) ([]entities.StrategyOption, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	head := rows[0]

	norm := func(s string) string {
		s = strings.TrimSpace(s)
		s = strings.TrimPrefix(s, "\uFEFF")
		s = strings.ToLower(s)
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, "-", "")
		s = strings.ReplaceAll(s, "_", "")
		return s
	}
	hmap := map[string]int{}
	for i, h := range head {
		hmap[norm(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cName := findAny("Name", "strategy")
	cSeed := findAny("SeedAmount", "seed")
	cCost := findAny("Cost", "cost_lkr", "investment")
	cYield := findAny("Yield", "yield_kg", "expected_yield")
	cDesc := findAny("Description", "desc")
	cBen := findAny("Benefits", "benefit")
	cIcon := findAny("Icon")

	if cName == -1 || cCost == -1 || cYield == -1 {
		return nil, fmt.Errorf("missing required columns, found headers: %v (need at least Name, Cost, Yield)", head)
	}

	var out []entities.StrategyOption
	for n, rec := range rows[1:] {
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		if strings.Join(rec, "") == "" {
			continue
		}
		line := n + 2

		cost, err := entities.ParseAmount(get(cCost))
		if err != nil {
			return nil, fmt.Errorf("row %d: cost %q: %w", line, get(cCost), err)
		}
		yield, err := entities.ParseAmount(get(cYield))
		if err != nil {
			return nil, fmt.Errorf("row %d: yield %q: %w", line, get(cYield), err)
		}
		var benefits []string
		for _, b := range strings.Split(get(cBen), ";") {
			if b = strings.TrimSpace(b); b != "" {
				benefits = append(benefits, b)
			}
		}
		o := entities.StrategyOption{
			Name:        get(cName),
			SeedAmount:  get(cSeed),
			Cost:        cost,
			Yield:       yield,
			Description: get(cDesc),
			Benefits:    benefits,
			Icon:        get(cIcon),
		}
		if err := check(o); err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		out = append(out, o)
	}
	return out, nil
}

func check(o entities.StrategyOption) error {
	switch {
	case o.Name == "":
		return errors.New("name is required")
	case !o.Cost.IsPositive():
		return fmt.Errorf("%s: cost must be positive, got %s", o.Name, o.Cost)
	case !o.Yield.IsPositive():
		return fmt.Errorf("%s: yield must be positive, got %s", o.Name, o.Yield)
	case entities.CheckAmount(o.Cost) != nil:
		return fmt.Errorf("%s: cost %s: %w", o.Name, o.Cost, entities.ErrAmountOutOfRange)
	case entities.CheckAmount(o.Yield) != nil:
		return fmt.Errorf("%s: yield %s: %w", o.Name, o.Yield, entities.ErrAmountOutOfRange)
	}
	return nil
}

// Clone copies a catalog so callers cannot mutate the loaded one.
func Clone(in []entities.StrategyOption) []entities.StrategyOption {
	out := make([]entities.StrategyOption, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

// FormatLKR renders an amount with thousands separators, as the dashboard
// shows money ("55,000").
func FormatLKR(d decimal.Decimal) string {
	s := d.Round(2).String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
