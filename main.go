package main

import (
	// zone database for sites configured with an IANA timezone name
	_ "time/tzdata"

	"gitlab.com/paramountdax-exchange/site_maintenance/cmd"
)

func main() {
	cmd.Execute()
}
