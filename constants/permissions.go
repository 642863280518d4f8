package constants

// Role permissions
const (
	PermAdminFull    = "af-logistics.admin.full-permit"
	PermCustomerFull = "af-logistics.customer.full-permit"
	PermRiderFull    = "af-logistics.rider.full-permit"

	// Special permissions
	PermAny = "any"
)

// PermissionsForRole maps an account role to the permission strings embedded
// in its tokens.
func PermissionsForRole(role string) []string {
	switch role {
	case "admin":
		return []string{PermAdminFull}
	case "rider":
		return []string{PermRiderFull}
	case "customer":
		return []string{PermCustomerFull}
	default:
		return nil
	}
}
