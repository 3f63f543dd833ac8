package gateway

// Permission action names as provisioned on the marketplace. Each endpoint
// method requires one of these; the token's api-routing-actions inventory
// must carry it for the call to pass the scope pre-check.
const (
	ActionNIN            = "VerifyMeNin"
	ActionBVN            = "VerifyMeBvn"
	ActionBankAccount    = "VerifyMeAccount"
	ActionTIN            = "VerifyMeTin"
	ActionDriversLicence = "VerifyMeDriversLicense"
	ActionPassport       = "VerifyMePassport"
	ActionPEP            = "VerifyMePep"
	ActionAML            = "VerifyMeAml"
	ActionFaceComparison = "VerifyMeFaceComparison"
	ActionAddress        = "VerifyMeAddress"
	ActionSafeToken      = "SafeTokenOtp"
	ActionCAC            = "MonoCac"
	ActionBVNAccounts    = "MonoBvnAccounts"
	ActionBVNIgree       = "MonoBvnIgree"
	ActionCreditHistory  = "MonoCreditHistory"
	ActionVAS            = "VasBillPayment"
)
