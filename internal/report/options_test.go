package report

// withAfterCategory runs fn after each category query of GetReport.
func withAfterCategory(fn func(name string)) Option {
	return func(e *Engine) { e.afterCategory = fn }
}
