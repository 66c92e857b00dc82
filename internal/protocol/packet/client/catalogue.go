package client

import (
	"sync"

	"github.com/danmuck/mirbot/internal/protocol/packet"
)

var (
	catalogueOnce sync.Once
	catalogue     *packet.Catalogue
)

// Catalogue returns the client message table.
func Catalogue() *packet.Catalogue {
	catalogueOnce.Do(func() {
		catalogue = packet.NewCatalogue("client",
			entry[ClientVersion](KindClientVersion),
			entry[Disconnect](KindDisconnect),
			entry[KeepAlive](KindKeepAlive),
			entry[Login](KindLogin),
			entry[NewCharacter](KindNewCharacter),
			entry[DeleteCharacter](KindDeleteCharacter),
			entry[StartGame](KindStartGame),
			entry[LogOut](KindLogOut),
			entry[Turn](KindTurn),
			entry[Walk](KindWalk),
			entry[Run](KindRun),
			entry[Chat](KindChat),
			entry[MoveItem](KindMoveItem),
			entry[EquipItem](KindEquipItem),
			entry[UseItem](KindUseItem),
			entry[DropItem](KindDropItem),
			entry[DropGold](KindDropGold),
			entry[PickUp](KindPickUp),
			entry[Attack](KindAttack),
			entry[RangeAttack](KindRangeAttack),
			entry[Magic](KindMagic),
			entry[CallNPC](KindCallNPC),
			entry[BuyItem](KindBuyItem),
			entry[SellItem](KindSellItem),
			entry[TownRevive](KindTownRevive),
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
