package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyFromPath(t *testing.T) {
	assert.Equal(t, "RawListingBatchEvent/1.0.0", generateKeyFromPath("events/raw-listing-batch/v1.json"))
	assert.Equal(t, "", generateKeyFromPath("events/unexpected/extra/v1.json"))
}

func TestValidateEvent(t *testing.T) {
	valid := []byte(`{
		"batch_id": "3e0aa2c4-7b6f-4c07-9f6e-0d4f6a1c2b3d",
		"source": "inmuebles24",
		"records": [
			{"id": "ext-1", "title": "Casa en Cancún", "price": 2500000}
		]
	}`)

	t.Run("valid batch passes", func(t *testing.T) {
		err := ValidateEvent("RawListingBatchEvent", "1.0.0", valid)
		assert.NoError(t, err)
	})

	t.Run("missing source is rejected", func(t *testing.T) {
		body := []byte(`{
			"batch_id": "3e0aa2c4-7b6f-4c07-9f6e-0d4f6a1c2b3d",
			"records": []
		}`)
		err := ValidateEvent("RawListingBatchEvent", "1.0.0", body)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("record without id is rejected", func(t *testing.T) {
		body := []byte(`{
			"batch_id": "3e0aa2c4-7b6f-4c07-9f6e-0d4f6a1c2b3d",
			"source": "inmuebles24",
			"records": [{"title": "Sin identificador"}]
		}`)
		err := ValidateEvent("RawListingBatchEvent", "1.0.0", body)
		assert.Error(t, err)
	})

	t.Run("invalid JSON is rejected", func(t *testing.T) {
		err := ValidateEvent("RawListingBatchEvent", "1.0.0", []byte(`{`))
		assert.Error(t, err)
	})

	t.Run("unknown event type is rejected", func(t *testing.T) {
		err := ValidateEvent("SomethingElseEvent", "1.0.0", valid)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}
