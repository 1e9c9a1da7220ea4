package controllers

import (
	"github.com/shaadicloset/shaadibackend/catalog"
	"github.com/shaadicloset/shaadibackend/storage"
	"github.com/shaadicloset/shaadibackend/utils"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// App holds every injected dependency the handlers use. Constructed once in
// main; handlers are methods returning gin.HandlerFunc closures.
type App struct {
	DB       *mongo.Database
	Catalog  *catalog.Store
	Taxonomy *catalog.Taxonomy
	Bucket   *storage.Bucket
	Files    *utils.FileValidator
}

func NewApp(db *mongo.Database, bucket *storage.Bucket, files *utils.FileValidator) *App {
	store := catalog.NewStore(db)
	return &App{
		DB:       db,
		Catalog:  store,
		Taxonomy: catalog.NewTaxonomy(store),
		Bucket:   bucket,
		Files:    files,
	}
}

func (a *App) users() *mongo.Collection {
	return a.DB.Collection("users")
}

func (a *App) refreshTokens() *mongo.Collection {
	return a.DB.Collection("refresh_tokens")
}
