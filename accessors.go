package arkprofile

import "github.com/ark-tools/arkprofile/internal/proptree"

// The accessors below navigate the well-known top-level property shape
// every real .arkprofile carries. They don't interpret gameplay meaning —
// they just save callers the repeated Properties().First("MyArkData")
// walk original_source's own PlayerLocalData class demonstrates is a safe,
// low-risk convenience. Each returns a zero value when the expected shape
// isn't present rather than erroring, matching that precedent.

// ArkData returns the inner property set of the top-level MyArkData
// struct, or an empty set if absent.
func (p *Profile) ArkData() *proptree.Set {
	entry, ok := p.env.Properties.First("MyArkData")
	if !ok {
		return proptree.NewSet()
	}
	st, ok := entry.(*proptree.StructEntry)
	if !ok || st.Data == nil {
		return proptree.NewSet()
	}
	return st.Data
}

// ArkItems returns the ArkItems array elements inside MyArkData.
func (p *Profile) ArkItems() *proptree.ArrayEntry {
	return arrayIn(p.ArkData(), "ArkItems")
}

// TamedDinos returns the ArkTamedDinosData array elements inside MyArkData.
func (p *Profile) TamedDinos() *proptree.ArrayEntry {
	return arrayIn(p.ArkData(), "ArkTamedDinosData")
}

// ClubArkTokens returns the ClubArkTokens integer count inside MyArkData,
// or 0 if absent.
func (p *Profile) ClubArkTokens() int32 {
	entry, ok := p.ArkData().First("ClubArkTokens")
	if !ok {
		return 0
	}
	se, ok := entry.(*proptree.SimpleEntry)
	if !ok {
		return 0
	}
	v, _ := se.Value.(int32)
	return v
}

// CustomCloudData returns the CustomCloudDatas array elements inside
// MyArkData.
func (p *Profile) CustomCloudData() *proptree.ArrayEntry {
	return arrayIn(p.ArkData(), "CustomCloudDatas")
}

// PersistentItemUnlocks returns the PersistentItemUnlocks array inside
// MyArkData.
func (p *Profile) PersistentItemUnlocks() *proptree.ArrayEntry {
	return arrayIn(p.ArkData(), "PersistentItemUnlocks")
}

// UnlockedAchievements returns the top-level UnlockedAchievements array.
func (p *Profile) UnlockedAchievements() *proptree.ArrayEntry {
	return arrayIn(p.env.Properties, "UnlockedAchievements")
}

// AchievementItems returns the top-level AchievementItemsCollectedList array.
func (p *Profile) AchievementItems() *proptree.ArrayEntry {
	return arrayIn(p.env.Properties, "AchievementItemsCollectedList")
}

// ExplorerNoteUnlocks returns the top-level GlobalExplorerNoteUnlocks array.
func (p *Profile) ExplorerNoteUnlocks() *proptree.ArrayEntry {
	return arrayIn(p.env.Properties, "GlobalExplorerNoteUnlocks")
}

// NamedExplorerNoteUnlocks returns the top-level
// GlobalNamedExplorerNoteUnlocks array.
func (p *Profile) NamedExplorerNoteUnlocks() *proptree.ArrayEntry {
	return arrayIn(p.env.Properties, "GlobalNamedExplorerNoteUnlocks")
}

// TamedDinoTags returns the top-level TamedDinoTags array.
func (p *Profile) TamedDinoTags() *proptree.ArrayEntry {
	return arrayIn(p.env.Properties, "TamedDinoTags")
}

// FogOfWars returns the top-level PerMapFogOfWars array.
func (p *Profile) FogOfWars() *proptree.ArrayEntry {
	return arrayIn(p.env.Properties, "PerMapFogOfWars")
}

// MapMarkers returns the top-level MapMarkersPerMaps array.
func (p *Profile) MapMarkers() *proptree.ArrayEntry {
	return arrayIn(p.env.Properties, "MapMarkersPerMaps")
}

// SavedFavoritesVersion returns the top-level SavedFavoritesVersion
// integer, or 0 if absent.
func (p *Profile) SavedFavoritesVersion() int32 {
	entry, ok := p.env.Properties.First("SavedFavoritesVersion")
	if !ok {
		return 0
	}
	se, ok := entry.(*proptree.SimpleEntry)
	if !ok {
		return 0
	}
	v, _ := se.Value.(int32)
	return v
}

func arrayIn(set *proptree.Set, name string) *proptree.ArrayEntry {
	entry, ok := set.First(name)
	if !ok {
		return &proptree.ArrayEntry{}
	}
	arr, ok := entry.(*proptree.ArrayEntry)
	if !ok {
		return &proptree.ArrayEntry{}
	}
	return arr
}
