// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"os"
	"topup-server/commons/carriers"
)

var CarrierIndex *carriers.LookupIndex

func InitCarriers() {
	table := carriers.DefaultTable()

	overwritePath := GetEnv("CARRIER_PREFIX_OVERWRITE", "carrier_prefix_overwrite.json")
	if _, err := os.Stat(overwritePath); err == nil {
		extra, err := carriers.LoadJSON(overwritePath)
		if err != nil {
			Logger.Printf("Warning: Failed to load carrier prefix overwrite data: %v", err)
		} else {
			merged := table.Merge(extra)
			if _, err := carriers.BuildIndex(merged); err != nil {
				Logger.Printf("Warning: Ignoring carrier prefix overwrite data: %v", err)
			} else {
				table = merged
				Logger.Printf("Loaded %d carrier prefix overwrite rules", len(extra))
			}
		}
	}

	idx, err := carriers.BuildIndex(table)
	if err != nil {
		Logger.Fatalf("Failed to build carrier index: %v", err)
	}

	for prefix, owners := range idx.Overlaps() {
		Logger.Debugf("Prefix %s is shared by %v, resolving to %s", prefix, owners, owners[0])
	}

	CarrierIndex = idx
	Logger.Printf("Loaded %d carriers across %d countries", len(idx.Providers()), len(idx.Countries()))
}
