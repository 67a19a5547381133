package item

// Material is what an item is made of; it decides which erosions apply.
type Material string

const (
	MaterialIron    Material = "iron"
	MaterialCopper  Material = "copper"
	MaterialSilver  Material = "silver"
	MaterialMithril Material = "mithril"
	MaterialGold    Material = "gold"
	MaterialWood    Material = "wood"
	MaterialLeather Material = "leather"
	MaterialCloth   Material = "cloth"
	MaterialFlesh   Material = "flesh"
	MaterialBone    Material = "bone"
	MaterialMineral Material = "mineral"
	MaterialGlass   Material = "glass"
)

var validMaterials = map[Material]bool{
	MaterialIron: true, MaterialCopper: true, MaterialSilver: true, MaterialMithril: true,
	MaterialGold: true, MaterialWood: true, MaterialLeather: true, MaterialCloth: true,
	MaterialFlesh: true, MaterialBone: true, MaterialMineral: true, MaterialGlass: true,
}

// Erosion is a kind of item damage.
type Erosion int

const (
	ErodeNone Erosion = iota
	ErodeRust
	ErodeBurn
	ErodeCorrode
	ErodeRot
)

// MaxErosion caps both erosion counters.
const MaxErosion = 3

// String returns the erosion adjective ("rusty", "burnt", ...).
func (e Erosion) String() string {
	switch e {
	case ErodeRust:
		return "rusty"
	case ErodeBurn:
		return "burnt"
	case ErodeCorrode:
		return "corroded"
	case ErodeRot:
		return "rotted"
	default:
		return "none"
	}
}

// Vulnerable reports whether m is affected by e.
func (m Material) Vulnerable(e Erosion) bool {
	switch e {
	case ErodeRust:
		return m == MaterialIron
	case ErodeCorrode:
		return m == MaterialIron || m == MaterialCopper
	case ErodeBurn:
		return m == MaterialWood || m == MaterialLeather || m == MaterialCloth || m == MaterialFlesh
	case ErodeRot:
		return m == MaterialWood || m == MaterialLeather || m == MaterialCloth || m == MaterialFlesh
	default:
		return false
	}
}

// ErodeResult describes what happened to an item hit by an erosion.
type ErodeResult int

const (
	// Eroded means the counter went up by one.
	Eroded ErodeResult = iota
	// ErodeImmune means the material does not suffer this erosion.
	ErodeImmune
	// ErodeProtected means the item is erodeproof.
	ErodeProtected
	// ErodeMaxed means the counter was already at MaxErosion.
	ErodeMaxed
)

// Erode applies one step of e to the instance.
//
// Postcondition: 0 <= Eroded, Eroded2 <= MaxErosion.
func (i *Instance) Erode(e Erosion) ErodeResult {
	if i.Def == nil || !i.Def.Material.Vulnerable(e) {
		return ErodeImmune
	}
	if i.Erodeproof {
		return ErodeProtected
	}
	counter := &i.Eroded
	if e == ErodeCorrode || e == ErodeRot {
		counter = &i.Eroded2
	}
	if *counter >= MaxErosion {
		return ErodeMaxed
	}
	*counter++
	return Eroded
}

// GreatestErosion returns the larger of the two erosion counters.
func (i *Instance) GreatestErosion() int {
	if i.Eroded2 > i.Eroded {
		return i.Eroded2
	}
	return i.Eroded
}
