package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartweb/internal/app"
	"chartweb/internal/fixture"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderWritesEveryChart(t *testing.T) {
	conf := writeConfig(t, "[log]\nlevel = \"error\"\n")
	dir := filepath.Join(t.TempDir(), "charts")

	out, err := execute(t, "render", "--config", conf, "--out", dir)
	require.NoError(t, err)

	for _, id := range []string{
		app.FigTotalPopulation, app.FigHispanicNonHispanic, app.FigWhiteBlackPopulation,
		app.FigTwoOrMoreRaces, app.FigPopulationBreakdown, app.FigOtherRaces,
	} {
		svg, err := os.ReadFile(filepath.Join(dir, id+".svg"))
		require.NoError(t, err, id)
		assert.Contains(t, string(svg), "<svg", id)
		assert.Contains(t, out, id+".svg")
	}
}

func TestExportUsesConfiguredFixture(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "states.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"State,Total,NonHispanic,Hispanic,WhiteTotal,BlackTotal,OtherTotal,TwoOrMoreTotal\n"+
			"Delaware,993635,894939,98696,634244,218266,96881,64130\n"), 0o644))
	conf := writeConfig(t, "[log]\nlevel = \"error\"\n[fixtures]\ndemographics = \""+filepath.ToSlash(csvPath)+"\"\n")
	xlsx := filepath.Join(dir, "out.xlsx")

	out, err := execute(t, "export", "--config", conf, "--out", xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, "1 records")

	tbl, err := fixture.Load(xlsx)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Delaware", "993635", "894939", "98696", "634244", "218266", "96881", "64130"}}, tbl.Rows)
}

func TestMissingExplicitConfig(t *testing.T) {
	_, err := execute(t, "export", "--config", filepath.Join(t.TempDir(), "nope.toml"), "--out", filepath.Join(t.TempDir(), "x.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestServeRejectsArgs(t *testing.T) {
	conf := writeConfig(t, "[log]\nlevel = \"error\"\n")
	_, err := execute(t, "serve", "--config", conf, "extra")
	require.Error(t, err)
}
