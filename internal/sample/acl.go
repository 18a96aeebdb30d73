package sample

import "github.com/openplm/plmseed/internal/plm"

// GroupACL builds an ACL from a group id to access level mapping.
func GroupACL(groups map[string]string) plm.ACL {
	var acl plm.ACL
	for _, id := range groupOrder {
		level, ok := groups[id]
		if !ok {
			continue
		}
		acl.GroupEntries = append(acl.GroupEntries, plm.ACLEntry{Key: id, Value: level})
	}
	return acl
}

// UserACL builds an ACL from a login to access level mapping, in the given
// order.
func UserACL(logins []string, levels map[string]string) plm.ACL {
	var acl plm.ACL
	for _, login := range logins {
		level, ok := levels[login]
		if !ok {
			level = plm.AccessFull
		}
		acl.UserEntries = append(acl.UserEntries, plm.ACLEntry{Key: login, Value: level})
	}
	return acl
}

// contentACL guards seeded documents and assemblies: the working groups keep
// full access, the consumer groups read, and the throwaway accounts are shut
// out individually.
func contentACL() *plm.ACL {
	acl := GroupACL(map[string]string{
		"Group1": plm.AccessFull,
		"Group2": plm.AccessFull,
		"Group3": plm.AccessFull,
		"Group4": plm.AccessReadOnly,
		"Group5": plm.AccessReadOnly,
	})
	acl.UserEntries = UserACL([]string{"toto", "tata"}, map[string]string{
		"toto": plm.AccessForbidden,
		"tata": plm.AccessForbidden,
	}).UserEntries
	return &acl
}
