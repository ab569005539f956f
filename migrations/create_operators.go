package migrations

import (
	"github.com/lokesh-sivakumar/hope-trust/models"
	"github.com/lokesh-sivakumar/hope-trust/utils"
)

func MigrateOperators() {
	utils.PortalDB.AutoMigrate(&models.User{})
}
