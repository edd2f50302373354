package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	t.Run("overlay wins on conflicts", func(t *testing.T) {
		merged := Merge(Values{"replicas": 1}, Values{"replicas": 3})
		assert.Equal(t, Values{"replicas": 3}, merged)
	})

	t.Run("nested maps merge, keeping sibling keys", func(t *testing.T) {
		base := Values{
			"image": Values{"repository": "ghcr.io/acme/myapp", "tag": "latest"},
		}
		overlay := Values{
			"image": Values{"tag": "v2.0.0"},
		}

		merged := Merge(base, overlay)

		image, ok := toValues(merged["image"])
		assert.True(t, ok)
		assert.Equal(t, "ghcr.io/acme/myapp", image["repository"])
		assert.Equal(t, "v2.0.0", image["tag"])
	})

	t.Run("plain map overlays merge too", func(t *testing.T) {
		base := Values{"service": map[string]any{"port": 80, "type": "ClusterIP"}}
		overlay := Values{"service": map[string]any{"port": 443}}

		merged := Merge(base, overlay)

		service, ok := toValues(merged["service"])
		assert.True(t, ok)
		assert.Equal(t, 443, service["port"])
		assert.Equal(t, "ClusterIP", service["type"])
	})

	t.Run("scalar replaces map", func(t *testing.T) {
		merged := Merge(Values{"ingress": Values{"enabled": true}}, Values{"ingress": false})
		assert.Equal(t, false, merged["ingress"])
	})

	t.Run("inputs are not modified", func(t *testing.T) {
		base := Values{"a": Values{"x": 1}}
		overlay := Values{"a": Values{"y": 2}}
		_ = Merge(base, overlay)

		inner, _ := toValues(base["a"])
		assert.NotContains(t, inner, "y")
	})
}
