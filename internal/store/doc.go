// Package store defines the interfaces for task persistence. The
// interfaces abstract the underlying storage engine from the service
// layer, so business rules stay independent of the database driver.
package store
