package edf

import (
	"fmt"
	"strings"
)

// Query builders for the EDF inventory store. The store contract takes raw
// query strings; aliases here define the row keys the report layer reads, so
// they must stay in sync with the model column constants and sheet layouts.

// DialPlansByCustomerNames resolves dial plan IDs from customer names using
// LIKE matches against both the primary and the site company name.
func DialPlansByCustomerNames(customerNames []string) string {
	conds := make([]string, 0, len(customerNames))
	for _, name := range customerNames {
		conds = append(conds, fmt.Sprintf(
			"customer.PRIMARY_COMPANY_NAME LIKE '%%%s%%' OR cust_site.SITE_COMPANY_NAME LIKE '%%%s%%'",
			name, name,
		))
	}
	return fmt.Sprintf(`SELECT DISTINCT
    customer.CUSTOMER_DIAL_PLAN_ID AS DIAL_PLAN_ID,
    MAX(
        COALESCE(
            customer.PRIMARY_COMPANY_NAME,
            cust_site.SITE_COMPANY_NAME
        )
    ) AS COMPANY_NAME
FROM
    CSI.CUSTOMER_SITE cust_site
    LEFT JOIN CSI.CUSTOMER customer ON customer.CUSTOMER_ID = cust_site.CUSTOMER_ID
WHERE
    %s
GROUP BY
    customer.CUSTOMER_DIAL_PLAN_ID`, strings.Join(conds, " OR "))
}

// SitesByDialPlan lists site identifiers, site detail IDs and access circuits
// for a dial plan.
func SitesByDialPlan(dialPlanID string) string {
	return fmt.Sprintf(`SELECT
    cust_site.SITE_IDENTIFIER,
    site_detail.BVOIP_CUSTOMER_SITE_DETAIL_ID,
    icore_custaccess.ACC_CKT
FROM
    CSI.CUSTOMER_SITE cust_site
    LEFT JOIN CSI.CUSTOMER customer ON customer.CUSTOMER_ID = cust_site.CUSTOMER_ID
    LEFT JOIN CSI.BVOIP_CUSTOMER_SITE_DETAIL site_detail ON site_detail.CUSTOMER_SITE_ID = cust_site.CUSTOMER_SITE_ID
    LEFT JOIN ICORE.PVC icore_pvc ON icore_pvc.PVC_ID = site_detail.ICORE_PVC_ID
    LEFT JOIN ICORE.CUST_ACCESS icore_custaccess ON icore_custaccess.SITE_ID = icore_pvc.PVC_LSITE_ID
WHERE
    customer.CUSTOMER_DIAL_PLAN_ID = '%s'`, dialPlanID)
}

// SiteAccountNumbers returns the most recently billed main account number for
// one site detail ID.
func SiteAccountNumbers(siteDetailID string) string {
	return fmt.Sprintf(`SELECT
    bcsd.BVOIP_CUSTOMER_SITE_DETAIL_ID,
    bfiv.MAIN_ACCOUNT_NUMBER
FROM
    INR.BVOIP_FEATURES_INV_VIEW bfiv
    JOIN CSI.BVOIP_CUSTOMER_SITE_DETAIL bcsd ON bfiv.SIID = bcsd.CHARGE_NUMBER
WHERE
    bfiv.ENTERPRISE_ID IS NOT NULL
    AND bcsd.BVOIP_CUSTOMER_SITE_DETAIL_ID = %s
ORDER BY
    bfiv.BILL_DATE DESC
FETCH NEXT
    1 ROWS ONLY`, siteDetailID)
}

// HubSiteTeleRanges returns TN ranges and site details for a dial plan's hub
// sites, joined out to billing hierarchy accounts and line-number start dates.
func HubSiteTeleRanges(dialPlanID string) string {
	return fmt.Sprintf(`SELECT
    cust_site.SITE_IDENTIFIER AS SITE_ID,
    COALESCE(
        cust_site.SITE_COMPANY_NAME,
        customer.PRIMARY_COMPANY_NAME
    ) AS COMPANY_NAME,
    cust_site.SITE_ROOM,
    cust_site.SITE_FLOOR,
    cust_site.SITE_ADDRESS,
    cust_site.SITE_CITY,
    cust_site.SITE_STATE,
    cust_site.SITE_ZIP,
    cust_site.SITE_COUNTRY,
    cust_site.SITE_STATUS,
    loc.CUST_ID AS C,
    hierC.HIER_PNT_ID AS H,
    hierAB.ACCT_1_NB AS BA,
    hierI.ACCT_1_NB AS I,
    hierAG.ACCT_1_NB AS CDG,
    hier.ACCT_1_NB AS SA,
    COALESCE(ca.IOC1, ca1.IOC1, icore_custaccess.ACC_CKT) AS CIRCUIT_ID,
    site_detail.BVOIP_CUSTOMER_SITE_DETAIL_ID,
    site_detail.ENHANCED_SERVICE_INDR,
    site_detail.IPTF_SIP_OPTIONS_INDR,
    customer.CUSTOMER_DIAL_PLAN_ID,
    CASE
        WHEN dpsr.REMOTE_TN_INDR = 'Y' THEN 'RB'
        WHEN dpsr.REMOTE_TN_INDR = 'N' THEN 'CH'
        ELSE NULL
    END AS HUB_RMT_IND,
    dpsr.LENGTH_OF_PBX_EXTENSION,
    dpsr.COUNTRY_CODE,
    dpsr.GATEWAY_CITY_CODE,
    dpsr.PBX_BEGIN_RANGE,
    dpsr.PBX_END_RANGE,
    dpsr.PORTED_OR_NATIVE_IND,
    dpsr.TN_RANGE_STATUS,
    dpsr.TN_RANGE_STATUS_DATE,
    dpsr.LNS_SWITCH_CLLI,
    dpsr.VIRTUAL_TN_INDR,
    dpsr.REMOTE_TN_INDR,
    dpsr.E911_TYPE_CD,
    dpsr.OUTPULSE_DIGITS,
    CASE
        WHEN dpsr.E911_TYPE_CD = 0 THEN 'TRADITIONAL'
        WHEN dpsr.E911_TYPE_CD = 1 THEN 'INTRADO'
        ELSE NULL
    END AS E911_TYPE_DESC,
    dpsr.SWITCH_TYPE,
    dpsr.CALL_ROUTING_INDR,
    dpsr.LAST_UPDATE_DATE,
    ln.LN_STRT_DT
FROM
    CSI.CUSTOMER_SITE cust_site
    LEFT JOIN CSI.CUSTOMER customer ON customer.CUSTOMER_ID = cust_site.CUSTOMER_ID
    LEFT JOIN CSI.BVOIP_CUSTOMER_SITE_DETAIL site_detail ON site_detail.CUSTOMER_SITE_ID = cust_site.CUSTOMER_SITE_ID
    LEFT JOIN ICORE.PVC icore_pvc ON icore_pvc.PVC_ID = site_detail.ICORE_PVC_ID
    LEFT JOIN ICORE.CUST_ACCESS icore_custaccess ON icore_custaccess.SITE_ID = icore_pvc.PVC_LSITE_ID
    LEFT JOIN CSI.DIAL_PLAN dp ON dp.BVOIP_CUSTOMER_SITE_DETAIL_ID = site_detail.BVOIP_CUSTOMER_SITE_DETAIL_ID
    LEFT JOIN CSI.DIAL_PLAN_SITE_RANGE dpsr ON dpsr.DIAL_PLAN_ID = dp.DIAL_PLAN_ID
    LEFT JOIN BIDS_DBA.IPV6_ASSIGNED_LINK_IPS ipv6ali ON ipv6ali.IPV6_ADDRESS_COMPRESS = site_detail.WAN_LINK_IP_ADDRESS
    LEFT JOIN BIDS_DBA.SERIAL_IP_ADDR sia ON sia.IP_ADDRESS = site_detail.WAN_LINK_IP_ADDRESS
    LEFT JOIN BIDS_DBA.IPV6_PORT_ASGMT_MAP pam ON pam.IPV6_LINK_IP_ID = ipv6ali.IPV6_LINK_IP_ID
    LEFT JOIN IPD_DBA.IP_PORT_ASGMT ipa ON ipa.SDID = pam.SDID
    LEFT JOIN IPD_DBA.IP_PORT_ASGMT ipa1 ON ipa1.WAN_ADDR_ID = sia.SERIAL_IP_ADDR_ID
    LEFT JOIN IPD_DBA.IP_SERV_ACC_PT isa ON isa.SERV_ACC_PT_ID = ipa.SERV_ACC_PT_ID
    LEFT JOIN IPD_DBA.IP_SERV_ACC_PT isa1 ON isa1.SERV_ACC_PT_ID = ipa1.SERV_ACC_PT_ID
    LEFT JOIN IPD_DBA.CUST_ACCESS ca ON ca.SITE_ID = isa.SITE_ID
    LEFT JOIN IPD_DBA.CUST_ACCESS ca1 ON ca1.SITE_ID = isa1.SITE_ID
    LEFT JOIN CADM.LN_TB ln ON ln.NPA_NB = dpsr.GATEWAY_CITY_CODE
    AND ln.NXX_NB = SUBSTR(dpsr.PBX_BEGIN_RANGE, 1, 3)
    AND ln.LN_NB = SUBSTR(dpsr.PBX_BEGIN_RANGE, -4)
    LEFT JOIN CADM.SVC_LOC_TB loc ON loc.SVC_LOC_ID = ln.SVC_LOC_ID
    LEFT JOIN CADM.HIER_PNT_TB hier ON hier.HIER_PNT_ID = loc.HIER_PNT_ID
    LEFT JOIN CADM.HIER_PNT_ASSOC_TB assocI ON assocI.HIER_PNT_ID = hier.HIER_PNT_ID
    AND assocI.PARNT_UB_ACCT_TYPE_CD = 'I'
    LEFT JOIN CADM.HIER_PNT_TB hierI ON hierI.HIER_PNT_ID = assocI.PARNT_HIER_PNT_ID
    LEFT JOIN CADM.HIER_PNT_ASSOC_TB assocAG ON assocAG.HIER_PNT_ID = hier.HIER_PNT_ID
    AND assocAG.PARNT_UB_ACCT_TYPE_CD = 'AG'
    LEFT JOIN CADM.HIER_PNT_TB hierAG ON hierAG.HIER_PNT_ID = assocAG.PARNT_HIER_PNT_ID
    LEFT JOIN CADM.HIER_PNT_ASSOC_TB assocC ON assocC.HIER_PNT_ID = hier.HIER_PNT_ID
    AND assocC.PARNT_UB_ACCT_TYPE_CD = 'C'
    LEFT JOIN CADM.HIER_PNT_TB hierC ON hierC.HIER_PNT_ID = assocC.PARNT_HIER_PNT_ID
    LEFT JOIN CADM.HIER_PNT_ASSOC_TB assocAB ON assocAB.HIER_PNT_ID = hier.HIER_PNT_ID
    AND assocAB.PARNT_UB_ACCT_TYPE_CD = 'AB'
    LEFT JOIN CADM.HIER_PNT_TB hierAB ON hierAB.HIER_PNT_ID = assocAB.PARNT_HIER_PNT_ID
WHERE
    customer.CUSTOMER_DIAL_PLAN_ID = '%s'`, dialPlanID)
}

// RemoteSiteTeleRanges returns TN ranges for the remote sites attached to the
// given hub site detail IDs. Remote-branch rows with no remote site ID are
// excluded at the source.
func RemoteSiteTeleRanges(siteDetailIDs []string) string {
	ids := strings.Join(siteDetailIDs, "','")
	return fmt.Sprintf(`SELECT
    rsd.RM_SITE_ID AS REMOTE_SITE_ID,
    rsd.RM_SITE_LOCATION,
    rsd.RM_SITE_ROOM AS SITE_ROOM,
    rsd.RM_SITE_FLOOR AS SITE_FLOOR,
    rsd.RM_SITE_ADDRESS AS SITE_ADDRESS,
    rsd.RM_SITE_CITY AS SITE_CITY,
    rsd.RM_SITE_STATE AS SITE_STATE,
    rsd.RM_SITE_ZIP AS SITE_ZIP,
    rsd.RM_SITE_COUNTRY AS SITE_COUNTRY,
    rsd.RM_SITE_STATUS AS SITE_STATUS,
    loc.CUST_ID AS C,
    hierC.HIER_PNT_ID AS H,
    hierAB.ACCT_1_NB AS BA,
    hierI.ACCT_1_NB AS I,
    hierAG.ACCT_1_NB AS CDG,
    hier.ACCT_1_NB AS SA,
    rsd.RM_SITE_DETAIL_ID,
    rsd.BVOIP_CUSTOMER_SITE_DETAIL_ID,
    CASE
        WHEN rstr.CORPORATE_POOL_TN_INDR = 'Y' THEN 'CH'
        WHEN rstr.CORPORATE_POOL_TN_INDR = 'N' THEN 'RB'
        ELSE NULL
    END AS HUB_RMT_IND,
    rstr.RM_SITE_LENGTH_OF_PBX_EXT AS LENGTH_OF_PBX_EXTENSION,
    rstr.RM_SITE_COUNTRY_CODE AS COUNTRY_CODE,
    rstr.RM_SITE_GW_CITY_CODE AS GATEWAY_CITY_CODE,
    rstr.RM_SITE_PBX_BEGIN_RANGE AS PBX_BEGIN_RANGE,
    rstr.RM_SITE_PBX_END_RANGE AS PBX_END_RANGE,
    rstr.RM_SITE_PORT_NATIVE_IND AS PORTED_OR_NATIVE_IND,
    rstr.RM_SITE_TN_RANGE_STATUS AS TN_RANGE_STATUS,
    rstr.RM_SITE_TN_RANGE_STATUS_DATE AS TN_RANGE_STATUS_DATE,
    rstr.RM_SITE_LNS_SWITCH_CLLI AS LNS_SWITCH_CLLI,
    rstr.RM_SITE_VIRTUAL_TN_INDR AS VIRTUAL_TN_INDR,
    rstr.CORPORATE_POOL_TN_INDR,
    rstr.E911_TYPE_CD,
    rstr.RM_SITE_OUTPULSE_DIGITS AS OUTPULSE_DIGITS,
    CASE
        WHEN rstr.E911_TYPE_CD = 0 THEN 'TRADITIONAL'
        WHEN rstr.E911_TYPE_CD = 1 THEN 'INTRADO'
        ELSE NULL
    END AS E911_TYPE_DESC,
    rstr.SWITCH_TYPE,
    rstr.CALL_ROUTING_INDR,
    rstr.LAST_UPDATE_DATE,
    ln.LN_STRT_DT
FROM
    CSI.REMOTE_SITE_DETAIL rsd
    LEFT JOIN CSI.REMOTE_SITE_TN_RANGE rstr ON rsd.RM_SITE_DETAIL_ID = rstr.RM_SITE_DETAIL_ID
    LEFT JOIN CADM.LN_TB ln ON ln.NPA_NB = rstr.RM_SITE_GW_CITY_CODE AND ln.NXX_NB = SUBSTR(rstr.RM_SITE_PBX_BEGIN_RANGE, 1, 3) AND ln.LN_NB = SUBSTR(rstr.RM_SITE_PBX_BEGIN_RANGE, -4)
    LEFT JOIN CADM.SVC_LOC_TB loc ON loc.SVC_LOC_ID = ln.SVC_LOC_ID
    LEFT JOIN CADM.HIER_PNT_TB hier ON hier.HIER_PNT_ID = loc.HIER_PNT_ID
    LEFT JOIN CADM.HIER_PNT_ASSOC_TB assocI ON assocI.HIER_PNT_ID = hier.HIER_PNT_ID AND assocI.PARNT_UB_ACCT_TYPE_CD = 'I'
    LEFT JOIN CADM.HIER_PNT_TB hierI ON hierI.HIER_PNT_ID = assocI.PARNT_HIER_PNT_ID
    LEFT JOIN CADM.HIER_PNT_ASSOC_TB assocAG ON assocAG.HIER_PNT_ID = hier.HIER_PNT_ID AND assocAG.PARNT_UB_ACCT_TYPE_CD = 'AG'
    LEFT JOIN CADM.HIER_PNT_TB hierAG ON hierAG.HIER_PNT_ID = assocAG.PARNT_HIER_PNT_ID
    LEFT JOIN CADM.HIER_PNT_ASSOC_TB assocC ON assocC.HIER_PNT_ID = hier.HIER_PNT_ID AND assocC.PARNT_UB_ACCT_TYPE_CD = 'C'
    LEFT JOIN CADM.HIER_PNT_TB hierC ON hierC.HIER_PNT_ID = assocC.PARNT_HIER_PNT_ID
    LEFT JOIN CADM.HIER_PNT_ASSOC_TB assocAB ON assocAB.HIER_PNT_ID = hier.HIER_PNT_ID AND assocAB.PARNT_UB_ACCT_TYPE_CD = 'AB'
    LEFT JOIN CADM.HIER_PNT_TB hierAB ON hierAB.HIER_PNT_ID = assocAB.PARNT_HIER_PNT_ID
WHERE
    rsd.BVOIP_CUSTOMER_SITE_DETAIL_ID IN ('%s')
    AND NOT (rstr.CORPORATE_POOL_TN_INDR = 'N' AND rsd.RM_SITE_ID IS NULL)`, ids)
}

// CnamAndTN returns caller-ID name records for the given site identifiers.
func CnamAndTN(siteIDs []string) string {
	ids := strings.Join(siteIDs, "','")
	return fmt.Sprintf(`SELECT
    CUST_SITE.SITE_IDENTIFIER,
    RM_SITE.RM_SITE_ID,
    CNAM.CNAM,
    CNAM.TN
FROM
    CSI.LIDB_CARE_CNAM_DETAIL CNAM
    LEFT JOIN CSI.CUSTOMER_SITE CUST_SITE ON CUST_SITE.CUSTOMER_SITE_ID = CNAM.CUSTOMER_SITE_ID
    LEFT JOIN CSI.REMOTE_SITE_DETAIL RM_SITE ON RM_SITE.RM_SITE_DETAIL_ID = CNAM.RM_SITE_DETAIL_ID
WHERE
    CUST_SITE.SITE_IDENTIFIER IN ('%s')`, ids)
}

// IPTollFreeTN returns IP toll-free routing records for a dial plan.
func IPTollFreeTN(dialPlanID string) string {
	return fmt.Sprintf(`SELECT
    iptfnumber.IPTF_NUMBER AS IPTF_NUMBER,
    ric.IPTF_RIC AS RIC,
    routing.SDOP AS SDOP,
    routing.RRN AS RRN,
    routing.REROUTE_RRN AS IP_ADR_RRN,
    routing.GUIDING_DIGITS AS GUIDING_DIGITS
FROM
    CSI.IPTF_NUMBER_DETAIL iptfnumber
    LEFT JOIN CSI.IPTF_RIC_DETAIL ric ON ric.IPTF_RIC_DETAIL_ID = iptfnumber.IPTF_RIC_DETAIL_ID
    LEFT JOIN CSI.IPTF_ROUTING_DETAIL routing ON routing.IPTF_NUMBER_DETAIL_ID = iptfnumber.IPTF_NUMBER_DETAIL_ID
    LEFT JOIN CSI.BVOIP_CUSTOMER_SITE_DETAIL site_detail ON site_detail.BVOIP_CUSTOMER_SITE_DETAIL_ID = ric.BVOIP_CUSTOMER_SITE_DETAIL_ID
    LEFT JOIN CSI.CUSTOMER_SITE cust_site ON cust_site.CUSTOMER_SITE_ID = site_detail.CUSTOMER_SITE_ID
    LEFT JOIN CSI.CUSTOMER customer ON customer.CUSTOMER_ID = cust_site.CUSTOMER_ID
WHERE
    customer.CUSTOMER_DIAL_PLAN_ID = '%s'`, dialPlanID)
}
