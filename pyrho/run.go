package pyrho

import (
	"os"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	_ "github.com/go-python/gpython/stdlib"
)

// RunFile executes a Python script in a fresh context.  If stdout is set, the script's print output goes there.
func RunFile(pathname string, stdout *os.File) error {
	ctx := py.NewContext(py.DefaultContextOpts())
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	if stdout != nil {
		sys := ctx.Store().MustGetModule("sys")
		sys.Globals["stdout"] = &py.File{
			File:     stdout,
			FileMode: py.FileWrite,
		}
	}

	startTime := time.Now()
	klog.V(2).Infof("executing %q", pathname)

	_, err := py.RunFile(ctx, pathname, py.CompileOpts{}, nil)
	if err != nil {
		py.TracebackDump(err)
		return errors.Wrapf(err, "run %q", pathname)
	}

	klog.V(2).Infof("execution of %q complete: %v", pathname, time.Since(startTime))
	return nil
}
