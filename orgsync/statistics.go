package orgsync

import (
	"fmt"
	"io"
	"time"
)

// PrintStatistics writes a human readable summary of syncStat to w.
func PrintStatistics(w io.Writer, syncStat *SyncStat) {
	if syncStat == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "Organization: %s\n", syncStat.Organization)
	_, _ = fmt.Fprintf(w, "Sync ID: %s\n", syncStat.SyncId)
	if !syncStat.Finished.IsZero() {
		_, _ = fmt.Fprintf(w, "Duration: %s\n", syncStat.Finished.Sub(syncStat.Started).Round(time.Millisecond))
	}
	_, _ = fmt.Fprintf(w, "Upserted:\n")
	_, _ = fmt.Fprintf(w, "\tOrganizations: %d\n", syncStat.Orgs)
	_, _ = fmt.Fprintf(w, "\tUsers: %d\n", syncStat.Users)
	_, _ = fmt.Fprintf(w, "\tTeams: %d\n", syncStat.Teams)
	_, _ = fmt.Fprintf(w, "\tMemberships: %d\n", syncStat.Memberships)
}
