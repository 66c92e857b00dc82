package server

import (
	"sync"

	"github.com/danmuck/mirbot/internal/protocol/packet"
)

var (
	catalogueOnce sync.Once
	catalogue     *packet.Catalogue
)

// Catalogue returns the server message table. Kinds the bot does not model
// are absent and decode as packet.ErrUnknownKind.
func Catalogue() *packet.Catalogue {
	catalogueOnce.Do(func() {
		catalogue = packet.NewCatalogue("server",
			entry[Connected](KindConnected),
			entry[ClientVersion](KindClientVersion),
			entry[Disconnect](KindDisconnect),
			entry[KeepAlive](KindKeepAlive),
			entry[Login](KindLogin),
			entry[LoginSuccess](KindLoginSuccess),
			entry[StartGame](KindStartGame),
			entry[LogOutSuccess](KindLogOutSuccess),
			entry[MapInformation](KindMapInformation),
			entry[MapChanged](KindMapChanged),
			entry[UserInformation](KindUserInformation),
			entry[UserLocation](KindUserLocation),
			entry[HealthChanged](KindHealthChanged),
			entry[Death](KindDeath),
			entry[Revived](KindRevived),
			entry[Pushed](KindPushed),
			entry[GainExperience](KindGainExperience),
			entry[LevelChanged](KindLevelChanged),
			entry[Poisoned](KindPoisoned),
			entry[AddBuff](KindAddBuff),
			entry[RemoveBuff](KindRemoveBuff),
			entry[Chat](KindChat),
			entry[Struck](KindStruck),
			entry[DamageIndicator](KindDamageIndicator),
			entry[Magic](KindMagic),
			entry[MagicCast](KindMagicCast),
			entry[ObjectPlayer](KindObjectPlayer),
			entry[ObjectMonster](KindObjectMonster),
			entry[ObjectNPC](KindObjectNPC),
			entry[ObjectItem](KindObjectItem),
			entry[ObjectGold](KindObjectGold),
			entry[ObjectRemove](KindObjectRemove),
			entry[ObjectTurn](KindObjectTurn),
			entry[ObjectWalk](KindObjectWalk),
			entry[ObjectRun](KindObjectRun),
			entry[ObjectChat](KindObjectChat),
			entry[ObjectAttack](KindObjectAttack),
			entry[ObjectStruck](KindObjectStruck),
			entry[ObjectDied](KindObjectDied),
			entry[ObjectHealth](KindObjectHealth),
			entry[ObjectMagic](KindObjectMagic),
			entry[NewItemInfo](KindNewItemInfo),
			entry[GainedItem](KindGainedItem),
			entry[GainedGold](KindGainedGold),
			entry[LoseGold](KindLoseGold),
			entry[DeleteItem](KindDeleteItem),
			entry[UseItem](KindUseItem),
			entry[DropItem](KindDropItem),
			entry[SellItem](KindSellItem),
			entry[NPCResponse](KindNPCResponse),
			compressed(entry[NPCGoods](KindNPCGoods)),
		)
	})
	return catalogue
}

func entry[T any, P interface {
	*T
	packet.Message
}](k Kind) packet.Entry {
	return packet.Entry{
		Kind: int16(k),
		Name: k.String(),
		New:  func() packet.Message { return P(new(T)) },
	}
}

func compressed(e packet.Entry) packet.Entry {
	e.Compressed = true
	return e
}
