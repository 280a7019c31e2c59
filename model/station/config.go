package station

import (
	"github.com/viant/structology/conv"
)

var converter = newConverter()

func newConverter() *conv.Converter {
	options := conv.DefaultOptions()
	options.IgnoreUnmapped = true
	return conv.NewConverter(options)
}

// DecodeConfig converts opaque station configuration into a typed struct pointed by dest
func DecodeConfig(config map[string]interface{}, dest interface{}) error {
	if len(config) == 0 {
		return nil
	}
	return converter.Convert(config, dest)
}
