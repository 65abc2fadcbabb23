package mqtt

import "strings"

// topicRoot prefixes every topic this service publishes.
const topicRoot = "localstore"

// Topics builds topic strings for one client.
//
// Layout:
//
//	localstore/<client_id>/status          retained online/offline status
//	localstore/<client_id>/change/<table>  one message per successful mutation
type Topics struct {
	ClientID string
}

// Status returns the retained status topic, also used for the LWT.
func (t Topics) Status() string {
	return topicRoot + "/" + t.ClientID + "/status"
}

// Change returns the change topic for table.
// MQTT wildcard and separator characters in table are replaced by '_'.
func (t Topics) Change(table string) string {
	return topicRoot + "/" + t.ClientID + "/change/" + sanitiseSegment(table)
}

// AllChanges returns a subscription filter matching every change topic.
func (t Topics) AllChanges() string {
	return topicRoot + "/" + t.ClientID + "/change/#"
}

// sanitiseSegment makes s safe as a single topic level.
func sanitiseSegment(s string) string {
	if s == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '+', '#', 0:
			return '_'
		default:
			return r
		}
	}, s)
}
