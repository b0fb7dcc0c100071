package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingDefaults(t *testing.T) {
	setup(t)

	settingService := SettingService{}

	port, err := settingService.GetPort()
	assert.NoError(t, err)
	assert.Equal(t, 2053, port)

	basePath, err := settingService.GetBasePath()
	assert.NoError(t, err)
	assert.Equal(t, "/", basePath)

	editorDashboard, err := settingService.GetEditorDashboard()
	assert.NoError(t, err)
	assert.True(t, editorDashboard, "editors see the dashboard unless turned off")

	maxAge, err := settingService.GetSessionMaxAge()
	assert.NoError(t, err)
	assert.Equal(t, 60, maxAge)
}

func TestSettingRoundTrip(t *testing.T) {
	setup(t)

	settingService := SettingService{}

	all, err := settingService.GetAllSetting()
	assert.NoError(t, err)

	all.WebPort = 8443
	all.EditorDashboard = false
	assert.NoError(t, settingService.UpdateAllSetting(all))

	port, err := settingService.GetPort()
	assert.NoError(t, err)
	assert.Equal(t, 8443, port)

	editorDashboard, err := settingService.GetEditorDashboard()
	assert.NoError(t, err)
	assert.False(t, editorDashboard)
}

func TestSettingSecretPersists(t *testing.T) {
	setup(t)

	settingService := SettingService{}

	first, err := settingService.GetSecret()
	assert.NoError(t, err)
	assert.Len(t, first, 32)

	second, err := settingService.GetSecret()
	assert.NoError(t, err)
	assert.Equal(t, first, second, "the cookie secret must survive restarts")
}

func TestSettingReset(t *testing.T) {
	setup(t)

	settingService := SettingService{}

	all, err := settingService.GetAllSetting()
	assert.NoError(t, err)
	all.WebPort = 9999
	assert.NoError(t, settingService.UpdateAllSetting(all))

	assert.NoError(t, settingService.ResetSettings())

	port, err := settingService.GetPort()
	assert.NoError(t, err)
	assert.Equal(t, 2053, port)
}

func TestGetTimeLocationFallsBack(t *testing.T) {
	setup(t)

	settingService := SettingService{}
	assert.NoError(t, settingService.setString("timeLocation", "Not/AZone"))

	loc, err := settingService.GetTimeLocation()
	assert.NoError(t, err)
	assert.Equal(t, "Africa/Dar_es_Salaam", loc.String())
}
