package events

import (
	"errors"
	"fmt"
)

var ErrUnknownPageKey = errors.New("unknown page key")

// PageKey names one of the fixed application sections the shell can show.
type PageKey string

const (
	PageVision    PageKey = "vision"
	PageQuick     PageKey = "quick"
	PageStudio    PageKey = "studio"
	PageTemplates PageKey = "templates"
	PagePacks     PageKey = "packs"
	PagePreview   PageKey = "preview"
	PagePublish   PageKey = "publish"
	PageMarket    PageKey = "market"
	PageSettings  PageKey = "settings"
)

// PageKeys lists every section in navigation order.
var PageKeys = []PageKey{
	PageVision,
	PageQuick,
	PageStudio,
	PageTemplates,
	PagePacks,
	PagePreview,
	PagePublish,
	PageMarket,
	PageSettings,
}

func (k PageKey) Valid() bool {
	for _, known := range PageKeys {
		if k == known {
			return true
		}
	}
	return false
}

// ParsePageKey converts s to a PageKey, rejecting names outside the fixed set.
func ParsePageKey(s string) (PageKey, error) {
	k := PageKey(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPageKey, s)
	}
	return k, nil
}
