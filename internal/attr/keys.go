// Package attr defines the metadata attribute vocabulary and the value
// comparator used for cascading sorts.
package attr

// Attribute keys understood by the index. Values follow the Spotlight
// naming convention so predicates read the same as mdfind queries.
const (
	Path             = "kMDItemPath"
	FSName           = "kMDItemFSName"
	DisplayName      = "kMDItemDisplayName"
	ContentType      = "kMDItemContentType"
	FSSize           = "kMDItemFSSize"
	CreationDate     = "kMDItemContentCreationDate"
	ModificationDate = "kMDItemContentModificationDate"
	LastUsedDate     = "kMDItemLastUsedDate"
	UserTags         = "kMDItemUserTags"
	Kind             = "kMDItemKind"
)

// ValueKind is the type a given attribute carries in result items.
type ValueKind string

const (
	KindString ValueKind = "string"
	KindNumber ValueKind = "number"
	KindDate   ValueKind = "date"
	KindBool   ValueKind = "bool"
	KindList   ValueKind = "list"
)

var kinds = map[string]ValueKind{
	Path:             KindString,
	FSName:           KindString,
	DisplayName:      KindString,
	ContentType:      KindString,
	FSSize:           KindNumber,
	CreationDate:     KindDate,
	ModificationDate: KindDate,
	LastUsedDate:     KindDate,
	UserTags:         KindList,
	Kind:             KindString,
}

// KindOf reports the value kind of key, and whether key is part of the
// attribute vocabulary at all.
func KindOf(key string) (ValueKind, bool) {
	k, ok := kinds[key]
	return k, ok
}

// Known reports whether key belongs to the attribute vocabulary.
func Known(key string) bool {
	_, ok := kinds[key]
	return ok
}

// Keys returns the full attribute vocabulary in stable order.
func Keys() []string {
	return []string{
		Path,
		FSName,
		DisplayName,
		ContentType,
		FSSize,
		CreationDate,
		ModificationDate,
		LastUsedDate,
		UserTags,
		Kind,
	}
}
