package pyrho

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runScript runs src as a script and returns what it printed.
func runScript(t *testing.T, src string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	script := filepath.Join(dir, "script.py")
	require.NoError(t, os.WriteFile(script, []byte(src), 0600))

	out, err := os.Create(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	runErr := RunFile(script, out)
	require.NoError(t, out.Close())

	printed, err := os.ReadFile(out.Name())
	require.NoError(t, err)
	return string(printed), runErr
}

func TestGraphAndDetect(t *testing.T) {
	out, err := runScript(t, `
import rho
g = rho.Graph("1,2,3,4,2")
print(g.size())
print(len(g))
print(g.neighbor(4))
print(g)
print(rho.detect(g))
print(rho.verify(g))
print(rho.detect(rho.Graph([0])))
print(rho.detect(rho.Graph((1, 2, 0))))
`)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"5",
		"5",
		"2",
		"1,2,3,4,2",
		"(2, 2, 3)",
		"(2, 2, 3)",
		"(0, 0, 1)",
		"(0, 0, 3)",
	}, "\n")+"\n", out)
}

func TestRandomGraph(t *testing.T) {
	out, err := runScript(t, `
import rho
a = rho.Graph(12, 7)
b = rho.Graph(12, 7)
print(a.size())
print(a.successors() == b.successors())
print(0 in rho.Graph(9, 3, "nonzero").successors())
`)
	require.NoError(t, err)
	assert.Equal(t, "12\nTrue\nFalse\n", out)
}

func TestScriptErrors(t *testing.T) {
	out, err := runScript(t, `
import rho
try:
    rho.Graph("3,1,2")
except IndexError:
    print("out of range")
try:
    rho.Graph("3,x")
except ValueError:
    print("parse")
try:
    rho.Graph("1,0").neighbor(2)
except IndexError:
    print("neighbor")
try:
    rho.Graph(5, 1, "sideways")
except ValueError:
    print("mode")
`)
	require.NoError(t, err)
	assert.Equal(t, "out of range\nparse\nneighbor\nmode\n", out)

	_, err = runScript(t, "import rho\nrho.detect(3)\n")
	assert.Error(t, err)
}

func TestSurvey(t *testing.T) {
	out, err := runScript(t, `
import rho
print(rho.survey(2, 200, 3, "uniform"))
`)
	require.NoError(t, err)
	assert.Contains(t, out, "nodes=2,mode=uniform,drawn=200,unique=4")
	assert.Contains(t, out, "entry 0:3 1:1")
}
