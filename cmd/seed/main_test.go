package main

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supanos/internal/model"
	"supanos/internal/testutil"
)

func TestSeed_IsIdempotent(t *testing.T) {
	gormDB := testutil.NewDB(t)
	var data seedData
	require.NoError(t, json.Unmarshal(defaultData, &data))
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	first, err := seed(ctx, gormDB, data, now)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Categories)
	assert.Equal(t, 7, first.Items)
	assert.Equal(t, 3, first.Events)
	assert.Equal(t, 3, first.Settings)
	assert.Zero(t, first.Skipped)

	second, err := seed(ctx, gormDB, data, now)
	require.NoError(t, err)
	assert.Zero(t, second.Categories)
	assert.Zero(t, second.Items)
	assert.Zero(t, second.Events)
	assert.Equal(t, 13, second.Skipped)

	var items int64
	require.NoError(t, gormDB.Model(&model.MenuItem{}).Count(&items).Error)
	assert.EqualValues(t, 7, items)

	var wings model.MenuItem
	require.NoError(t, gormDB.Where("name = ?", "Wings").First(&wings).Error)
	assert.Equal(t, "12.99", wings.Price.StringFixed(2))
	assert.Equal(t, model.StringList{"popular"}, wings.Tags)

	var football model.Event
	require.NoError(t, gormDB.Where("title = ?", "Sunday Football").First(&football).Error)
	assert.True(t, football.DateTime.Equal(time.Date(2026, 10, 21, 17, 0, 0, 0, time.UTC)))
}
