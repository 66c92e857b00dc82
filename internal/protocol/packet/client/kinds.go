package client

import "fmt"

// Kind numbers client-originated messages. The order mirrors the server's
// client packet enum.
type Kind int16

const (
	KindClientVersion Kind = iota
	KindDisconnect
	KindKeepAlive
	KindNewAccount
	KindChangePassword
	KindLogin
	KindNewCharacter
	KindDeleteCharacter
	KindStartGame
	KindLogOut
	KindTurn
	KindWalk
	KindRun
	KindChat
	KindMoveItem
	KindStoreItem
	KindTakeBackItem
	KindMergeItem
	KindEquipItem
	KindRemoveItem
	KindRemoveSlotItem
	KindSplitItem
	KindUseItem
	KindDropItem
	KindDepositRefineItem
	KindRetrieveRefineItem
	KindRefineCancel
	KindRefineItem
	KindCheckRefine
	KindReplaceWeddingRing
	KindDepositTradeItem
	KindRetrieveTradeItem
	KindDropGold
	KindPickUp
	KindInspect
	KindChangeAMode
	KindChangePMode
	KindChangeTrade
	KindAttack
	KindRangeAttack
	KindHarvest
	KindCallNPC
	KindBuyItem
	KindSellItem
	KindCraftItem
	KindRepairItem
	KindBuyItemBack
	KindSRepairItem
	KindMagicKey
	KindMagic
	KindSwitchGroup
	KindAddMember
	KindDelMember
	KindGroupInvite
	KindTownRevive
)

var kindNames = [...]string{
	KindClientVersion:      "ClientVersion",
	KindDisconnect:         "Disconnect",
	KindKeepAlive:          "KeepAlive",
	KindNewAccount:         "NewAccount",
	KindChangePassword:     "ChangePassword",
	KindLogin:              "Login",
	KindNewCharacter:       "NewCharacter",
	KindDeleteCharacter:    "DeleteCharacter",
	KindStartGame:          "StartGame",
	KindLogOut:             "LogOut",
	KindTurn:               "Turn",
	KindWalk:               "Walk",
	KindRun:                "Run",
	KindChat:               "Chat",
	KindMoveItem:           "MoveItem",
	KindStoreItem:          "StoreItem",
	KindTakeBackItem:       "TakeBackItem",
	KindMergeItem:          "MergeItem",
	KindEquipItem:          "EquipItem",
	KindRemoveItem:         "RemoveItem",
	KindRemoveSlotItem:     "RemoveSlotItem",
	KindSplitItem:          "SplitItem",
	KindUseItem:            "UseItem",
	KindDropItem:           "DropItem",
	KindDepositRefineItem:  "DepositRefineItem",
	KindRetrieveRefineItem: "RetrieveRefineItem",
	KindRefineCancel:       "RefineCancel",
	KindRefineItem:         "RefineItem",
	KindCheckRefine:        "CheckRefine",
	KindReplaceWeddingRing: "ReplaceWeddingRing",
	KindDepositTradeItem:   "DepositTradeItem",
	KindRetrieveTradeItem:  "RetrieveTradeItem",
	KindDropGold:           "DropGold",
	KindPickUp:             "PickUp",
	KindInspect:            "Inspect",
	KindChangeAMode:        "ChangeAMode",
	KindChangePMode:        "ChangePMode",
	KindChangeTrade:        "ChangeTrade",
	KindAttack:             "Attack",
	KindRangeAttack:        "RangeAttack",
	KindHarvest:            "Harvest",
	KindCallNPC:            "CallNPC",
	KindBuyItem:            "BuyItem",
	KindSellItem:           "SellItem",
	KindCraftItem:          "CraftItem",
	KindRepairItem:         "RepairItem",
	KindBuyItemBack:        "BuyItemBack",
	KindSRepairItem:        "SRepairItem",
	KindMagicKey:           "MagicKey",
	KindMagic:              "Magic",
	KindSwitchGroup:        "SwitchGroup",
	KindAddMember:          "AddMember",
	KindDelMember:          "DelMember",
	KindGroupInvite:        "GroupInvite",
	KindTownRevive:         "TownRevive",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int16(k))
}
