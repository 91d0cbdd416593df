// Package retry polls a condition until it holds.
//
// [Poll] re-evaluates a check at a fixed interval, bounded by a maximum
// number of attempts and an overall timeout. It is used to wait for Ambari
// services to reach a target state after a start or stop request.
package retry
