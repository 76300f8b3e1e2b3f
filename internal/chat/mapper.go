package chat

import "webtalk/internal/storage"

func ConvertDBRoomToRoom(dbRoom *storage.Room) *Room {
	return &Room{
		ID:        dbRoom.ID,
		Name:      dbRoom.Name,
		CreatedBy: dbRoom.CreatedBy,
		IsPrivate: dbRoom.IsPrivate,
		CreatedAt: dbRoom.CreatedAt,
	}
}

func convertMembers(userIDs []string) []Member {
	members := make([]Member, len(userIDs))
	for i, id := range userIDs {
		members[i] = Member{UserID: id}
	}
	return members
}

func convertMemberships(roomIDs []string) []Membership {
	memberships := make([]Membership, len(roomIDs))
	for i, id := range roomIDs {
		memberships[i] = Membership{RoomID: id}
	}
	return memberships
}
