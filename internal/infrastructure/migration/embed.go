package migration

import "embed"

// Scripts holds the versioned SQL for every strategy and dialect under
// scripts/<strategy>/<dialect>.
//
//go:embed scripts
var Scripts embed.FS

func dialectDir(strategy, driver string) string {
	if driver == "mysql" {
		return "scripts/" + strategy + "/mysql"
	}
	return "scripts/" + strategy + "/sqlite"
}
