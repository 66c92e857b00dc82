package server

import "fmt"

// Kind numbers server-originated messages. The order mirrors the server's
// packet enum; a server built from a different revision needs a matching
// table.
type Kind int16

const (
	KindConnected Kind = iota
	KindClientVersion
	KindDisconnect
	KindKeepAlive
	KindNewAccount
	KindChangePassword
	KindChangePasswordBanned
	KindLogin
	KindLoginBanned
	KindLoginSuccess
	KindNewCharacter
	KindNewCharacterSuccess
	KindDeleteCharacter
	KindDeleteCharacterSuccess
	KindStartGame
	KindStartGameBanned
	KindStartGameDelay
	KindMapInformation
	KindUserInformation
	KindUserLocation
	KindObjectPlayer
	KindObjectRemove
	KindObjectTurn
	KindObjectWalk
	KindObjectRun
	KindChat
	KindObjectChat
	KindNewItemInfo
	KindMoveItem
	KindEquipItem
	KindMergeItem
	KindRemoveItem
	KindRemoveSlotItem
	KindTakeBackItem
	KindStoreItem
	KindSplitItem
	KindSplitItem1
	KindDepositRefineItem
	KindRetrieveRefineItem
	KindRefineCancel
	KindRefineItem
	KindDepositTradeItem
	KindRetrieveTradeItem
	KindUseItem
	KindDropItem
	KindPlayerUpdate
	KindPlayerInspect
	KindLogOutSuccess
	KindLogOutFailed
	KindTimeOfDay
	KindChangeAMode
	KindChangePMode
	KindObjectItem
	KindObjectGold
	KindGainedItem
	KindGainedGold
	KindLoseGold
	KindGainedCredit
	KindLoseCredit
	KindObjectMonster
	KindObjectAttack
	KindStruck
	KindObjectStruck
	KindDamageIndicator
	KindDuraChanged
	KindHealthChanged
	KindDeleteItem
	KindDeath
	KindObjectDied
	KindColourChanged
	KindObjectColourChanged
	KindObjectGuildNameChanged
	KindGainExperience
	KindLevelChanged
	KindObjectLeveled
	KindObjectHarvest
	KindObjectHarvested
	KindObjectNPC
	KindNPCResponse
	KindObjectHide
	KindObjectShow
	KindPoisoned
	KindObjectPoisoned
	KindMapChanged
	KindObjectTeleportOut
	KindObjectTeleportIn
	KindTeleportIn
	KindNPCGoods
	KindNPCSell
	KindNPCRepair
	KindNPCSRepair
	KindNPCRefine
	KindNPCCheckRefine
	KindNPCCollectRefine
	KindNPCReplaceWedRing
	KindNPCStorage
	KindSellItem
	KindCraftItem
	KindRepairItem
	KindItemRepaired
	KindNewMagic
	KindRemoveMagic
	KindMagicLeveled
	KindMagic
	KindMagicDelay
	KindMagicCast
	KindObjectMagic
	KindObjectEffect
	KindRangeAttack
	KindPushed
	KindObjectPushed
	KindObjectName
	KindUserStorage
	KindSwitchGroup
	KindDeleteGroup
	KindDeleteMember
	KindGroupInvite
	KindAddMember
	KindRevived
	KindObjectRevived
	KindSpellToggle
	KindObjectHealth
	KindMapEffect
	KindObjectRangeAttack
	KindAddBuff
	KindRemoveBuff
)

var kindNames = [...]string{
	KindConnected:              "Connected",
	KindClientVersion:          "ClientVersion",
	KindDisconnect:             "Disconnect",
	KindKeepAlive:              "KeepAlive",
	KindNewAccount:             "NewAccount",
	KindChangePassword:         "ChangePassword",
	KindChangePasswordBanned:   "ChangePasswordBanned",
	KindLogin:                  "Login",
	KindLoginBanned:            "LoginBanned",
	KindLoginSuccess:           "LoginSuccess",
	KindNewCharacter:           "NewCharacter",
	KindNewCharacterSuccess:    "NewCharacterSuccess",
	KindDeleteCharacter:        "DeleteCharacter",
	KindDeleteCharacterSuccess: "DeleteCharacterSuccess",
	KindStartGame:              "StartGame",
	KindStartGameBanned:        "StartGameBanned",
	KindStartGameDelay:         "StartGameDelay",
	KindMapInformation:         "MapInformation",
	KindUserInformation:        "UserInformation",
	KindUserLocation:           "UserLocation",
	KindObjectPlayer:           "ObjectPlayer",
	KindObjectRemove:           "ObjectRemove",
	KindObjectTurn:             "ObjectTurn",
	KindObjectWalk:             "ObjectWalk",
	KindObjectRun:              "ObjectRun",
	KindChat:                   "Chat",
	KindObjectChat:             "ObjectChat",
	KindNewItemInfo:            "NewItemInfo",
	KindMoveItem:               "MoveItem",
	KindEquipItem:              "EquipItem",
	KindMergeItem:              "MergeItem",
	KindRemoveItem:             "RemoveItem",
	KindRemoveSlotItem:         "RemoveSlotItem",
	KindTakeBackItem:           "TakeBackItem",
	KindStoreItem:              "StoreItem",
	KindSplitItem:              "SplitItem",
	KindSplitItem1:             "SplitItem1",
	KindDepositRefineItem:      "DepositRefineItem",
	KindRetrieveRefineItem:     "RetrieveRefineItem",
	KindRefineCancel:           "RefineCancel",
	KindRefineItem:             "RefineItem",
	KindDepositTradeItem:       "DepositTradeItem",
	KindRetrieveTradeItem:      "RetrieveTradeItem",
	KindUseItem:                "UseItem",
	KindDropItem:               "DropItem",
	KindPlayerUpdate:           "PlayerUpdate",
	KindPlayerInspect:          "PlayerInspect",
	KindLogOutSuccess:          "LogOutSuccess",
	KindLogOutFailed:           "LogOutFailed",
	KindTimeOfDay:              "TimeOfDay",
	KindChangeAMode:            "ChangeAMode",
	KindChangePMode:            "ChangePMode",
	KindObjectItem:             "ObjectItem",
	KindObjectGold:             "ObjectGold",
	KindGainedItem:             "GainedItem",
	KindGainedGold:             "GainedGold",
	KindLoseGold:               "LoseGold",
	KindGainedCredit:           "GainedCredit",
	KindLoseCredit:             "LoseCredit",
	KindObjectMonster:          "ObjectMonster",
	KindObjectAttack:           "ObjectAttack",
	KindStruck:                 "Struck",
	KindObjectStruck:           "ObjectStruck",
	KindDamageIndicator:        "DamageIndicator",
	KindDuraChanged:            "DuraChanged",
	KindHealthChanged:          "HealthChanged",
	KindDeleteItem:             "DeleteItem",
	KindDeath:                  "Death",
	KindObjectDied:             "ObjectDied",
	KindColourChanged:          "ColourChanged",
	KindObjectColourChanged:    "ObjectColourChanged",
	KindObjectGuildNameChanged: "ObjectGuildNameChanged",
	KindGainExperience:         "GainExperience",
	KindLevelChanged:           "LevelChanged",
	KindObjectLeveled:          "ObjectLeveled",
	KindObjectHarvest:          "ObjectHarvest",
	KindObjectHarvested:        "ObjectHarvested",
	KindObjectNPC:              "ObjectNPC",
	KindNPCResponse:            "NPCResponse",
	KindObjectHide:             "ObjectHide",
	KindObjectShow:             "ObjectShow",
	KindPoisoned:               "Poisoned",
	KindObjectPoisoned:         "ObjectPoisoned",
	KindMapChanged:             "MapChanged",
	KindObjectTeleportOut:      "ObjectTeleportOut",
	KindObjectTeleportIn:       "ObjectTeleportIn",
	KindTeleportIn:             "TeleportIn",
	KindNPCGoods:               "NPCGoods",
	KindNPCSell:                "NPCSell",
	KindNPCRepair:              "NPCRepair",
	KindNPCSRepair:             "NPCSRepair",
	KindNPCRefine:              "NPCRefine",
	KindNPCCheckRefine:         "NPCCheckRefine",
	KindNPCCollectRefine:       "NPCCollectRefine",
	KindNPCReplaceWedRing:      "NPCReplaceWedRing",
	KindNPCStorage:             "NPCStorage",
	KindSellItem:               "SellItem",
	KindCraftItem:              "CraftItem",
	KindRepairItem:             "RepairItem",
	KindItemRepaired:           "ItemRepaired",
	KindNewMagic:               "NewMagic",
	KindRemoveMagic:            "RemoveMagic",
	KindMagicLeveled:           "MagicLeveled",
	KindMagic:                  "Magic",
	KindMagicDelay:             "MagicDelay",
	KindMagicCast:              "MagicCast",
	KindObjectMagic:            "ObjectMagic",
	KindObjectEffect:           "ObjectEffect",
	KindRangeAttack:            "RangeAttack",
	KindPushed:                 "Pushed",
	KindObjectPushed:           "ObjectPushed",
	KindObjectName:             "ObjectName",
	KindUserStorage:            "UserStorage",
	KindSwitchGroup:            "SwitchGroup",
	KindDeleteGroup:            "DeleteGroup",
	KindDeleteMember:           "DeleteMember",
	KindGroupInvite:            "GroupInvite",
	KindAddMember:              "AddMember",
	KindRevived:                "Revived",
	KindObjectRevived:          "ObjectRevived",
	KindSpellToggle:            "SpellToggle",
	KindObjectHealth:           "ObjectHealth",
	KindMapEffect:              "MapEffect",
	KindObjectRangeAttack:      "ObjectRangeAttack",
	KindAddBuff:                "AddBuff",
	KindRemoveBuff:             "RemoveBuff",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int16(k))
}
