package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValue_UnmarshalJSON(t *testing.T) {
	t.Run("object form", func(t *testing.T) {
		var d DefaultValue
		require.NoError(t, json.Unmarshal([]byte(`{"value":"payload","useSdkValue":true}`), &d))
		assert.Equal(t, "payload", d.Value)
		assert.True(t, d.UseSdkValue)
	})

	t.Run("bare string form", func(t *testing.T) {
		var d DefaultValue
		require.NoError(t, json.Unmarshal([]byte(`"payload"`), &d))
		assert.Equal(t, "payload", d.Value)
		assert.False(t, d.UseSdkValue)
	})
}

func TestFlexString_UnmarshalJSON(t *testing.T) {
	t.Run("bare string", func(t *testing.T) {
		var f FlexString
		require.NoError(t, json.Unmarshal([]byte(`"abc"`), &f))
		assert.Equal(t, FlexString("abc"), f)
	})

	t.Run("wrapped object", func(t *testing.T) {
		var f FlexString
		require.NoError(t, json.Unmarshal([]byte(`{"value":"abc"}`), &f))
		assert.Equal(t, FlexString("abc"), f)
	})
}

func TestRemoteConfigItem_ToUpdateItem(t *testing.T) {
	item := RemoteConfigItem{
		Name:         "device_upgrade_info",
		Description:  "fallback description",
		DefaultValue: DefaultValue{Value: `{"version":"1.0.0"}`},
		FilterValues: []FilterValue{
			{Condition: json.RawMessage(`{"region":"eu"}`), Value: "eu-value"},
			{Value: "bare-value"},
		},
	}

	update := item.ToUpdateItem()

	// both name fields must carry the parameter name
	assert.Equal(t, "device_upgrade_info", update.Key)
	assert.Equal(t, "device_upgrade_info", update.Name)
	assert.Equal(t, "fallback description", update.Description)
	assert.Equal(t, `{"version":"1.0.0"}`, update.DefaultValue.Value)

	require.Len(t, update.ConditionalValues, 2)
	assert.Equal(t, json.RawMessage(`{"region":"eu"}`), update.ConditionalValues[0].Condition)
	assert.Equal(t, "eu-value", update.ConditionalValues[0].Value)

	// a missing condition becomes an empty object, never null
	assert.Equal(t, json.RawMessage(`{}`), update.ConditionalValues[1].Condition)
	assert.Equal(t, "bare-value", update.ConditionalValues[1].Value)
}

func TestRemoteConfigItem_ResolvedDescription(t *testing.T) {
	assert.Equal(t, "short", RemoteConfigItem{Desc: "short", Description: "long"}.ResolvedDescription())
	assert.Equal(t, "long", RemoteConfigItem{Description: "long"}.ResolvedDescription())
	assert.Empty(t, RemoteConfigItem{}.ResolvedDescription())
}

func TestRemoteConfigSnapshot_FindItem(t *testing.T) {
	snapshot := RemoteConfigSnapshot{
		ConfigItems: []RemoteConfigItem{
			{Name: "a"},
			{Name: "b"},
		},
	}

	item, found := snapshot.FindItem("b")
	require.True(t, found)
	assert.Equal(t, "b", item.Name)

	_, found = snapshot.FindItem("c")
	assert.False(t, found)
}
