// internal/worth/kinds.go
//
// Price-table key vocabularies: spawnable creatures and block materials.
//
// The lists cover what a spawner can hold and what a faction can place in
// a claim.  Names match the server's own identifiers so operators can copy
// them straight from in-game tooling.
package worth

// EntityKind identifies a creature type a spawner can produce.
type EntityKind int

const (
	Bat EntityKind = iota
	Blaze
	CaveSpider
	Chicken
	Cow
	Creeper
	Enderman
	Endermite
	Ghast
	Giant
	Guardian
	Horse
	IronGolem
	MagmaCube
	MushroomCow
	Ocelot
	Pig
	PigZombie
	Rabbit
	Sheep
	Silverfish
	Skeleton
	Slime
	SnowGolem
	Spider
	Squid
	Villager
	Witch
	Wither
	Wolf
	Zombie
	numEntityKinds
)

var entityNames = [...]string{
	Bat:         "BAT",
	Blaze:       "BLAZE",
	CaveSpider:  "CAVE_SPIDER",
	Chicken:     "CHICKEN",
	Cow:         "COW",
	Creeper:     "CREEPER",
	Enderman:    "ENDERMAN",
	Endermite:   "ENDERMITE",
	Ghast:       "GHAST",
	Giant:       "GIANT",
	Guardian:    "GUARDIAN",
	Horse:       "HORSE",
	IronGolem:   "IRON_GOLEM",
	MagmaCube:   "MAGMA_CUBE",
	MushroomCow: "MUSHROOM_COW",
	Ocelot:      "OCELOT",
	Pig:         "PIG",
	PigZombie:   "PIG_ZOMBIE",
	Rabbit:      "RABBIT",
	Sheep:       "SHEEP",
	Silverfish:  "SILVERFISH",
	Skeleton:    "SKELETON",
	Slime:       "SLIME",
	SnowGolem:   "SNOWMAN",
	Spider:      "SPIDER",
	Squid:       "SQUID",
	Villager:    "VILLAGER",
	Witch:       "WITCH",
	Wither:      "WITHER",
	Wolf:        "WOLF",
	Zombie:      "ZOMBIE",
}

var _ = [1]struct{}{}[len(entityNames)-int(numEntityKinds)]

// Entities is the EntityType vocabulary.
var Entities = newVocabulary[EntityKind]("EntityType", entityNames[:])

func (e EntityKind) String() string { return Entities.String(e) }

// MaterialKind identifies a placeable block material.
type MaterialKind int

const (
	Beacon MaterialKind = iota
	Bookshelf
	Cauldron
	Chest
	CoalBlock
	CoalOre
	DiamondBlock
	DiamondOre
	Dispenser
	Dropper
	EmeraldBlock
	EmeraldOre
	EnchantmentTable
	EnderChest
	EnderPortalFrame
	GoldBlock
	GoldOre
	Hopper
	IronBlock
	IronOre
	LapisBlock
	LapisOre
	MobSpawner
	Obsidian
	QuartzBlock
	RedstoneBlock
	RedstoneOre
	SeaLantern
	SlimeBlock
	Sponge
	TrappedChest
	numMaterialKinds
)

var materialNames = [...]string{
	Beacon:           "BEACON",
	Bookshelf:        "BOOKSHELF",
	Cauldron:         "CAULDRON",
	Chest:            "CHEST",
	CoalBlock:        "COAL_BLOCK",
	CoalOre:          "COAL_ORE",
	DiamondBlock:     "DIAMOND_BLOCK",
	DiamondOre:       "DIAMOND_ORE",
	Dispenser:        "DISPENSER",
	Dropper:          "DROPPER",
	EmeraldBlock:     "EMERALD_BLOCK",
	EmeraldOre:       "EMERALD_ORE",
	EnchantmentTable: "ENCHANTMENT_TABLE",
	EnderChest:       "ENDER_CHEST",
	EnderPortalFrame: "ENDER_PORTAL_FRAME",
	GoldBlock:        "GOLD_BLOCK",
	GoldOre:          "GOLD_ORE",
	Hopper:           "HOPPER",
	IronBlock:        "IRON_BLOCK",
	IronOre:          "IRON_ORE",
	LapisBlock:       "LAPIS_BLOCK",
	LapisOre:         "LAPIS_ORE",
	MobSpawner:       "MOB_SPAWNER",
	Obsidian:         "OBSIDIAN",
	QuartzBlock:      "QUARTZ_BLOCK",
	RedstoneBlock:    "REDSTONE_BLOCK",
	RedstoneOre:      "REDSTONE_ORE",
	SeaLantern:       "SEA_LANTERN",
	SlimeBlock:       "SLIME_BLOCK",
	Sponge:           "SPONGE",
	TrappedChest:     "TRAPPED_CHEST",
}

var _ = [1]struct{}{}[len(materialNames)-int(numMaterialKinds)]

// Materials is the Material vocabulary.
var Materials = newVocabulary[MaterialKind]("Material", materialNames[:])

func (m MaterialKind) String() string { return Materials.String(m) }
