package report

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Column maps a row key to the header it renders under.
type Column struct {
	Key    string `yaml:"key"`
	Header string `yaml:"header"`
}

// Layout describes the three worksheets of the report workbook.
type Layout struct {
	TNRanges []Column `yaml:"tn_ranges"`
	CNAM     []Column `yaml:"cnam_tn"`
	TollFree []Column `yaml:"iptf_tn"`
}

// DefaultLayout returns the standard workbook layout. Header names diverge
// from row keys where downstream consumers expect the short form
// (DIAL_PLAN_ID, HUB/RMT).
func DefaultLayout() Layout {
	return Layout{
		TNRanges: []Column{
			{Key: "SITE_ID", Header: "SITE_ID"},
			{Key: "REMOTE_SITE_ID", Header: "REMOTE_SITE_ID"},
			{Key: "RM_SITE_LOCATION", Header: "RM_SITE_LOCATION"},
			{Key: "COMPANY_NAME", Header: "COMPANY_NAME"},
			{Key: "SITE_ROOM", Header: "SITE_ROOM"},
			{Key: "SITE_FLOOR", Header: "SITE_FLOOR"},
			{Key: "SITE_ADDRESS", Header: "SITE_ADDRESS"},
			{Key: "SITE_CITY", Header: "SITE_CITY"},
			{Key: "SITE_STATE", Header: "SITE_STATE"},
			{Key: "SITE_COUNTRY", Header: "SITE_COUNTRY"},
			{Key: "SITE_ZIP", Header: "SITE_ZIP"},
			{Key: "MAIN_ACCOUNT_NUMBER", Header: "MAIN_ACCOUNT_NUMBER"},
			{Key: "C", Header: "C"},
			{Key: "H", Header: "H"},
			{Key: "BA", Header: "BA"},
			{Key: "I", Header: "I"},
			{Key: "CDG", Header: "CDG"},
			{Key: "SA", Header: "SA"},
			{Key: "CIRCUIT_ID", Header: "CIRCUIT_ID"},
			{Key: "CUSTOMER_DIAL_PLAN_ID", Header: "DIAL_PLAN_ID"},
			{Key: "HUB_RMT_IND", Header: "HUB/RMT"},
			{Key: "LENGTH_OF_PBX_EXTENSION", Header: "LENGTH_OF_PBX_EXTENSION"},
			{Key: "COUNTRY_CODE", Header: "COUNTRY_CODE"},
			{Key: "GATEWAY_CITY_CODE", Header: "GATEWAY_CITY_CODE"},
			{Key: "PBX_BEGIN_RANGE", Header: "PBX_BEGIN_RANGE"},
			{Key: "PBX_END_RANGE", Header: "PBX_END_RANGE"},
			{Key: "PORTED_OR_NATIVE_IND", Header: "PORTED_OR_NATIVE_IND"},
			{Key: "ENHANCED_SERVICE_INDR", Header: "ENHANCED_SERVICE_IND"},
			{Key: "IPTF_SIP_OPTIONS_INDR", Header: "IPTF_SIP_OPTIONS_IND"},
			{Key: "TN_RANGE_STATUS", Header: "TN_RANGE_STATUS"},
			{Key: "TN_RANGE_STATUS_DATE", Header: "TN_RANGE_STATUS_DATE"},
			{Key: "LNS_SWITCH_CLLI", Header: "LNS_SWITCH_CLLI"},
			{Key: "SWITCH_TYPE", Header: "SWITCH_TYPE"},
			{Key: "VIRTUAL_TN_INDR", Header: "VIRTUAL_TN_IND"},
			{Key: "REMOTE_TN_INDR", Header: "REMOTE_TN_IND"},
			{Key: "E911_TYPE_CD", Header: "E911_TYPE"},
			{Key: "E911_TYPE_DESC", Header: "E911_TYPE_DESC"},
			{Key: "OUTPULSE_DIGITS", Header: "OUTPULSE_DIGITS"},
			{Key: "CALL_ROUTING_INDR", Header: "CALL_ROUTING_IND"},
			{Key: "LAST_UPDATE_DATE", Header: "LAST_UPDATE_DATE"},
			{Key: "LN_STRT_DT", Header: "LN_STRT_DT"},
		},
		CNAM: []Column{
			{Key: "SITE_IDENTIFIER", Header: "SITE_ID"},
			{Key: "RM_SITE_ID", Header: "REMOTE_SITE_ID"},
			{Key: "CNAM", Header: "CNAM"},
			{Key: "TN", Header: "TN"},
		},
		TollFree: []Column{
			{Key: "IPTF_NUMBER", Header: "IPTF_NUMBER"},
			{Key: "RIC", Header: "RIC"},
			{Key: "SDOP", Header: "SDOP"},
			{Key: "RRN", Header: "RRN"},
			{Key: "IP_ADR_RRN", Header: "IP_ADR_RRN"},
			{Key: "GUIDING_DIGITS", Header: "GUIDING_DIGITS"},
		},
	}
}

// LoadLayout reads a layout override from a YAML file. Sheets left empty in
// the file keep their default columns.
func LoadLayout(path string) (Layout, error) {
	layout := DefaultLayout()
	data, err := os.ReadFile(path)
	if err != nil {
		return layout, eris.Wrapf(err, "report: read layout %s", path)
	}
	var override Layout
	if err := yaml.Unmarshal(data, &override); err != nil {
		return layout, eris.Wrapf(err, "report: parse layout %s", path)
	}
	if len(override.TNRanges) > 0 {
		layout.TNRanges = override.TNRanges
	}
	if len(override.CNAM) > 0 {
		layout.CNAM = override.CNAM
	}
	if len(override.TollFree) > 0 {
		layout.TollFree = override.TollFree
	}
	return layout, nil
}
