package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorJSONKeepsExtraFields(t *testing.T) {
	var d Doctor
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Dr","email":"d@example.com","phone":"123","slots":[1,2]}`), &d))
	assert.Equal(t, "Dr", d.Name)
	assert.Equal(t, "123", d.Extra["phone"])
	assert.NotContains(t, d.Extra, "email")

	out, err := json.Marshal(d)
	require.NoError(t, err)
	var back map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, "d@example.com", back["email"])
	assert.Equal(t, "123", back["phone"])
	assert.Equal(t, []interface{}{float64(1), float64(2)}, back["slots"])
}

func TestDoctorJSONWithoutExtraFields(t *testing.T) {
	out, err := json.Marshal(Doctor{Name: "Dr", Email: "d@example.com"})
	require.NoError(t, err)
	var back map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &back))
	assert.ElementsMatch(t, []string{"_id", "name", "email", "specialty"}, keys(back))
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
