package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowGetMissingColumn(t *testing.T) {
	r := Row{ColSiteID: "S1"}
	assert.Equal(t, "S1", r.Get(ColSiteID))
	assert.Equal(t, "", r.Get(ColCircuitID))
}

func TestHasRemoteSiteID(t *testing.T) {
	for _, sentinel := range []string{"", "N/A", "NONE", "NULL", "n/a", "  null  "} {
		r := Row{ColRemoteSiteID: sentinel}
		assert.False(t, r.HasRemoteSiteID(), "value %q", sentinel)
	}
	assert.True(t, Row{ColRemoteSiteID: "RS1"}.HasRemoteSiteID())
}

func TestIsRemoteBranch(t *testing.T) {
	assert.True(t, Row{ColHubRmtInd: HubIndicatorRemote}.IsRemoteBranch())
	assert.False(t, Row{ColHubRmtInd: HubIndicatorCorporate}.IsRemoteBranch())
	assert.False(t, Row{}.IsRemoteBranch())
}

func TestCloneIsIndependent(t *testing.T) {
	r := Row{ColSiteID: "S1"}
	c := r.Clone()
	c[ColSiteID] = "S2"
	assert.Equal(t, "S1", r[ColSiteID])
	assert.Equal(t, "S2", c[ColSiteID])
}
