package draft

// Merge reconciles a local draft against freshly fetched remote data.
// Remote fields that are present always override the draft for matching
// keys; the draft only fills gaps. This is the single reconciliation rule
// used by every wizard step.
func Merge(local, remote map[string]any) map[string]any {
	merged := make(map[string]any, len(local)+len(remote))
	for k, v := range local {
		merged[k] = v
	}
	for k, v := range remote {
		if v == nil {
			continue
		}
		merged[k] = v
	}
	return merged
}
