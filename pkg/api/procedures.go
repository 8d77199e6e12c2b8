package api

const (
	AuthServiceName        = "tipsplit.v1.AuthService"
	SettingsServiceName    = "tipsplit.v1.SettingsService"
	CalculationServiceName = "tipsplit.v1.CalculationService"
	BrandingServiceName    = "tipsplit.v1.BrandingService"
)

// Service path prefixes for mounting handlers on a mux.
const (
	AuthServicePath        = "/" + AuthServiceName + "/"
	SettingsServicePath    = "/" + SettingsServiceName + "/"
	CalculationServicePath = "/" + CalculationServiceName + "/"
	BrandingServicePath    = "/" + BrandingServiceName + "/"
)

const (
	AuthRegisterProcedure       = AuthServicePath + "Register"
	AuthLoginProcedure          = AuthServicePath + "Login"
	AuthGetCurrentUserProcedure = AuthServicePath + "GetCurrentUser"

	CalculationCalculateProcedure = CalculationServicePath + "Calculate"
	CalculationSaveProcedure      = CalculationServicePath + "SaveCalculation"
	CalculationListProcedure      = CalculationServicePath + "ListCalculations"
	CalculationDeleteProcedure    = CalculationServicePath + "DeleteCalculation"

	BrandingGetHeaderProcedure = BrandingServicePath + "GetHeader"
)

// Settings resources. Each has List, Create, Update, Delete and Watch
// procedures, e.g. /tipsplit.v1.SettingsService/ListPhases.
const (
	ResourcePhases    = "Phases"
	ResourcePositions = "Positions"
	ResourceProjects  = "Projects"
	ResourceRoles     = "Roles"
)

// SettingsProcedure builds the procedure path for a verb on a resource.
func SettingsProcedure(verb, resource string) string {
	return SettingsServicePath + verb + resource
}
