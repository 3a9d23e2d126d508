// Package database holds the optional container catalog.
//
// Connect opens MySQL or SQLite through GORM. The Catalog records every opened
// container with the fingerprint of the key that unlocked it and its file
// count, so operators can see which keys are in use without exposing them.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	catalog := database.NewCatalog(db)
//	err = catalog.Migrate(ctx)
//	err = catalog.Save(ctx, database.Container{ContainerID: "pakchunk0", FileCount: 120})
package database
