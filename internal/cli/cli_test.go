//go:build !integration

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/service"
)

var flatPouch = []string{"--type", "flat_3_side", "--width", "100", "--height", "150", "--thickness", "80", "--material", "PE"}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func args(extra ...string) []string {
	return append(append([]string{}, flatPouch...), extra...)
}

func TestQuoteCommand(t *testing.T) {
	t.Run("table output", func(t *testing.T) {
		out, err := run(t, append([]string{"quote"}, args("--qty", "5000")...)...)
		require.NoError(t, err)
		assert.Contains(t, out, "Unit price")
		assert.Contains(t, out, "JPY")
		assert.Contains(t, out, "Total with tax")
	})

	t.Run("json output", func(t *testing.T) {
		out, err := run(t, append([]string{"quote"}, args("--qty", "5000", "--json")...)...)
		require.NoError(t, err)

		var q dto.QuoteResponse
		require.NoError(t, json.Unmarshal([]byte(out), &q))
		assert.Equal(t, 5000, q.Quantity)
		assert.Positive(t, q.UnitPrice)
		assert.Equal(t, "JPY", q.Currency)
	})

	t.Run("printing options", func(t *testing.T) {
		plain, err := run(t, append([]string{"quote"}, args("--qty", "5000", "--json")...)...)
		require.NoError(t, err)
		printed, err := run(t, append([]string{"quote"}, args("--qty", "5000", "--json", "--printing", "gravure", "--colors", "4", "--double-sided")...)...)
		require.NoError(t, err)

		var a, b dto.QuoteResponse
		require.NoError(t, json.Unmarshal([]byte(plain), &a))
		require.NoError(t, json.Unmarshal([]byte(printed), &b))
		assert.Zero(t, a.Breakdown.Printing)
		assert.Positive(t, b.Breakdown.Printing)
	})

	t.Run("validation error", func(t *testing.T) {
		_, err := run(t, "quote", "--type", "flat_3_side", "--width", "5", "--height", "150", "--thickness", "80", "--material", "PE", "--qty", "5000")
		require.Error(t, err)
		assert.Contains(t, err.Error(), string(model.KindInvalidDimension))
	})

	t.Run("missing required flags", func(t *testing.T) {
		_, err := run(t, "quote", "--type", "flat_3_side")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "required flag")
	})
}

func TestCompareCommand(t *testing.T) {
	t.Run("preserves the requested order", func(t *testing.T) {
		out, err := run(t, append([]string{"compare"}, args("--quantities", "10000,1000,5000", "--json")...)...)
		require.NoError(t, err)

		var c dto.ComparisonResponse
		require.NoError(t, json.Unmarshal([]byte(out), &c))
		require.Len(t, c.Results, 3)
		assert.Equal(t, []int{10000, 1000, 5000}, []int{c.Results[0].Quantity, c.Results[1].Quantity, c.Results[2].Quantity})
		assert.Equal(t, 3, c.Succeeded)
		assert.NotNil(t, c.Recommendation)
	})

	t.Run("table output", func(t *testing.T) {
		out, err := run(t, append([]string{"compare"}, args("--quantities", "1000,5000,10000")...)...)
		require.NoError(t, err)
		assert.Contains(t, out, "QUANTITY")
		assert.Contains(t, out, "(best)")
		assert.Contains(t, out, "Recommended:")
	})

	t.Run("writes a workbook", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "quotes.xlsx")
		_, err := run(t, append([]string{"compare"}, args("--quantities", "1000,5000", "--xlsx", path)...)...)
		require.NoError(t, err)

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("Quotes")
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "1000", rows[1][0])
	})

	t.Run("empty quantity list", func(t *testing.T) {
		_, err := run(t, append([]string{"compare"}, args("--quantities", "")...)...)
		require.Error(t, err)
	})
}

func TestCostModelCommands(t *testing.T) {
	t.Run("dump prints the defaults", func(t *testing.T) {
		out, err := run(t, "cost-model", "dump")
		require.NoError(t, err)

		m, err := service.DecodeCostModel(strings.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, model.DefaultCostModel().TaxRate, m.TaxRate)
	})

	t.Run("dump merges a file over the defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "override.yaml")
		require.NoError(t, os.WriteFile(path, []byte("taxRate: 0.08\n"), 0o600))

		out, err := run(t, "cost-model", "dump", "--cost-model", path)
		require.NoError(t, err)

		m, err := service.DecodeCostModel(strings.NewReader(out))
		require.NoError(t, err)
		assert.InDelta(t, 0.08, m.TaxRate, 1e-9)
	})

	t.Run("validate", func(t *testing.T) {
		good := filepath.Join(t.TempDir(), "good.yaml")
		require.NoError(t, os.WriteFile(good, []byte("currency: JPY\n"), 0o600))
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("taxRate: -1\n"), 0o600))

		out, err := run(t, "cost-model", "validate", good)
		require.NoError(t, err)
		assert.Contains(t, out, "ok")

		_, err = run(t, "cost-model", "validate", bad)
		assert.Error(t, err)

		_, err = run(t, "cost-model", "validate", filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}
