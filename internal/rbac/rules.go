package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"mechanic": {
		"checklist:view",
		"wizard:start",
		"wizard:step",
		"inspection:view-own",
		"asset:upload",
	},
	"admin": {
		"*", // everything
	},
}
