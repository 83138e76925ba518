// Command dictctl imports, searches and ranks dictionary catalogs.
//
//	dictctl --store local:/var/lib/dictionary import --app fenix --file metrics.json
//	dictctl --store local:/var/lib/dictionary search --app fenix tags:Sync bookmark
//	dictctl --store s3://dictionary/catalogs expiring --app fenix --horizon 6
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
