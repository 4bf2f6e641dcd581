// Package services contains domain services: stateless rules that span more
// than one aggregate.
//
// AccessPolicy decides whether a user may read or change an order or another
// user's role. It never loads data; callers pass the aggregates in.
package services
