// Package model defines the row types flowing through the TN range pipeline.
package model

import "strings"

// Row is a single record returned by the EDF store: column name to stringified
// value. Rows keep every column the source query produced so the report sheets
// can render pass-through columns without the pipeline enumerating them.
type Row map[string]string

// Well-known column names. Aliases match the EDF query builders exactly.
const (
	ColSiteID           = "SITE_ID"
	ColRemoteSiteID     = "REMOTE_SITE_ID"
	ColCompanyName      = "COMPANY_NAME"
	ColCircuitID        = "CIRCUIT_ID"
	ColSiteDetailID     = "BVOIP_CUSTOMER_SITE_DETAIL_ID"
	ColDialPlanID       = "CUSTOMER_DIAL_PLAN_ID"
	ColHubRmtInd        = "HUB_RMT_IND"
	ColPBXBeginRange    = "PBX_BEGIN_RANGE"
	ColPBXEndRange      = "PBX_END_RANGE"
	ColLastUpdateDate   = "LAST_UPDATE_DATE"
	ColLnStartDate      = "LN_STRT_DT"
	ColMainAccountNum   = "MAIN_ACCOUNT_NUMBER"
	ColEnhancedSvcInd   = "ENHANCED_SERVICE_INDR"
	ColIPTFSIPOptions   = "IPTF_SIP_OPTIONS_INDR"
	ColSiteIdentifier   = "SITE_IDENTIFIER"
	ColRmSiteID         = "RM_SITE_ID"
	ColResolvedDialPlan = "DIAL_PLAN_ID"
)

// Hub/remote indicator values.
const (
	HubIndicatorCorporate = "CH" // corporate hub pooled
	HubIndicatorRemote    = "RB" // remote branch pooled
)

// Get returns the value for a column, or "" when absent.
func (r Row) Get(col string) string { return r[col] }

// SiteDetailID returns the BVoIP customer site detail ID.
func (r Row) SiteDetailID() string { return r[ColSiteDetailID] }

// PBXBeginRange returns the deduplication key.
func (r Row) PBXBeginRange() string { return r[ColPBXBeginRange] }

// IsRemoteBranch reports whether the row is a remote-branch pooled range.
func (r Row) IsRemoteBranch() bool { return r[ColHubRmtInd] == HubIndicatorRemote }

// remoteSiteSentinels are REMOTE_SITE_ID values that mean "no remote site".
// The store stringifies NULLs, so literal sentinel text shows up in the data.
var remoteSiteSentinels = map[string]bool{
	"":     true,
	"N/A":  true,
	"NONE": true,
	"NULL": true,
}

// HasRemoteSiteID reports whether REMOTE_SITE_ID identifies a real remote site.
func (r Row) HasRemoteSiteID() bool {
	return !remoteSiteSentinels[strings.ToUpper(strings.TrimSpace(r[ColRemoteSiteID]))]
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// DialPlanRef identifies a dial plan resolved from caller input or from a
// customer-name lookup.
type DialPlanRef struct {
	DialPlanID  string `json:"dial_plan_id"`
	CompanyName string `json:"company_name"`
}
