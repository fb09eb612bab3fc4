// File: oneday/handlers/bundle.go
package handlers

import (
	"oneday/services/catalog"
	"oneday/services/user"
	"oneday/utils"
)

// HandlerBundle groups the collaborators every endpoint handler draws on.
type HandlerBundle struct {
	Users   user.UserService
	Catalog *catalog.Catalog
	Tokens  utils.TokenCache
}
