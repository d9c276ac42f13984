package driver

import (
	"nova/internal/diag"
	"nova/internal/observ"
	"nova/internal/project"
)

// Options are shared by Tokenize, Parse and ParseDir.
type Options struct {
	Limits     project.Limits
	KeepTrivia bool          // только Tokenize
	Cache      *DiskCache    // nil = без кэша
	Timer      *observ.Timer // nil = без замеров
	Jobs       int           // ParseDir; <= 0 = GOMAXPROCS
	Progress   ProgressSink  // ParseDir
}

func (o Options) newBag() *diag.Bag {
	return diag.NewBag(o.Limits.MaxDiagnostics)
}

// fatalDiagnostic turns a limit violation into a diagnostic so that callers
// render it like any other error.
func fatalDiagnostic(bag *diag.Bag, err error) {
	if le, ok := err.(*diag.LimitError); ok {
		bag.Add(le.Diagnostic())
	}
}
