// Package instagram reads account lists out of Instagram "Download your information" exports.
//
// Two JSON layouts are recognised:
//
//	followers_1.json  [{"string_list_data": [{"value": "alice", ...}]}, ...]
//	following.json    {"relationships_following": [{"string_list_data": [{"value": "bob", ...}]}, ...]}
//
// Entries without string_list_data are skipped. Files that do not end in .json are read as a
// headerless one-column CSV of usernames.
package instagram
