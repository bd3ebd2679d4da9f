package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator     *gst.ShaderTranslator
	translatorErr  error
	translatorOnce sync.Once
)

// GetTranslator returns the process wide shader translator, creating it
// on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(context.Background())
		if translatorErr != nil {
			translatorErr = fmt.Errorf("failed to create shader translator: %w", translatorErr)
		}
	})
	return translator, translatorErr
}
