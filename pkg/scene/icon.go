package scene

// Icon is a scene icon from the hub's palette. Unrecognised icons decode
// without error and report Known() == false.
type Icon string

// Scene icons
const (
	IconArriveHome    Icon = "scenes_arrive_home"
	IconBook          Icon = "scenes_book"
	IconBriefcase     Icon = "scenes_briefcase"
	IconBrightnessUp  Icon = "scenes_brightness_up"
	IconBroom         Icon = "scenes_broom"
	IconCake          Icon = "scenes_cake"
	IconClapper       Icon = "scenes_clapper"
	IconCleanSparkles Icon = "scenes_clean_sparkles"
	IconCutlery       Icon = "scenes_cutlery"
	IconDiscoBall     Icon = "scenes_disco_ball"
	IconGamePad       Icon = "scenes_game_pad"
	IconGiftBag       Icon = "scenes_gift_bag"
	IconGiftBox       Icon = "scenes_gift_box"
	IconHeadphones    Icon = "scenes_headphones"
	IconHeart         Icon = "scenes_heart"
	IconHomeFilled    Icon = "scenes_home_filled"
	IconHotDrink      Icon = "scenes_hot_drink"
	IconLadle         Icon = "scenes_ladle"
	IconLeaf          Icon = "scenes_leaf"
	IconLeaveHome     Icon = "scenes_leave_home"
	IconMoon          Icon = "scenes_moon"
	IconMusicNote     Icon = "scenes_music_note"
	IconPainting      Icon = "scenes_painting"
	IconPopcorn       Icon = "scenes_popcorn"
	IconPotWithLid    Icon = "scenes_pot_with_lid"
	IconSpeaker       Icon = "scenes_speaker_generic"
	IconSprayBottle   Icon = "scenes_spray_bottle"
	IconSuitcase      Icon = "scenes_suitcase"
	IconSuitcase2     Icon = "scenes_suitcase_2"
	IconSunHorizon    Icon = "scenes_sun_horizon"
	IconTree          Icon = "scenes_tree"
	IconTrophy        Icon = "scenes_trophy"
	IconWakeUp        Icon = "scenes_wake_up"
	IconWeights       Icon = "scenes_weights"
	IconYoga          Icon = "scenes_yoga"
)

var icons = map[Icon]struct{}{
	IconArriveHome: {}, IconBook: {}, IconBriefcase: {}, IconBrightnessUp: {},
	IconBroom: {}, IconCake: {}, IconClapper: {}, IconCleanSparkles: {},
	IconCutlery: {}, IconDiscoBall: {}, IconGamePad: {}, IconGiftBag: {},
	IconGiftBox: {}, IconHeadphones: {}, IconHeart: {}, IconHomeFilled: {},
	IconHotDrink: {}, IconLadle: {}, IconLeaf: {}, IconLeaveHome: {},
	IconMoon: {}, IconMusicNote: {}, IconPainting: {}, IconPopcorn: {},
	IconPotWithLid: {}, IconSpeaker: {}, IconSprayBottle: {}, IconSuitcase: {},
	IconSuitcase2: {}, IconSunHorizon: {}, IconTree: {}, IconTrophy: {},
	IconWakeUp: {}, IconWeights: {}, IconYoga: {},
}

// Known reports whether i is in the palette.
func (i Icon) Known() bool {
	_, ok := icons[i]
	return ok
}
