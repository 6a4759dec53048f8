// Package lingosnip turns per-key localized strings into language-conditional
// template snippets for deployment pipelines.
//
// Given a translation key and an ordered list of enabled languages (index 0
// is the highest priority and the default), the resolver emits one Liquid
// conditional with a branch per language plus a fallback branch that repeats
// the default language's value. Catalog loads are memoized through a
// strategy-selectable cache (memory, disk, hybrid, redis).
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/TessaraLabs/lingosnip"
//	    "github.com/TessaraLabs/lingosnip/cache"
//	    "github.com/TessaraLabs/lingosnip/catalog"
//	)
//
//	func main() {
//	    svc, _ := cache.NewService(cache.Config{Strategy: cache.StrategyMemory}, nil)
//	    defer svc.Close()
//
//	    loader := catalog.NewLoader(catalog.NewDirReader("./locales"),
//	        catalog.WithCache(svc),
//	    )
//
//	    r, err := lingosnip.NewResolver(loader, []string{"fr-FR", "en-US"})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    snippet, err := r.Resolve(context.Background(), "login.title")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(snippet)
//	    // {% if lang == 'fr-FR' %}Connexion
//	    // {% elsif lang == 'en-US' %}Log in
//	    // {% else %}Connexion
//	    // {% endif %}
//	}
package lingosnip
