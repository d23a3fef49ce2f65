package models

import "github.com/google/uuid"

type VideoCastMember struct {
	VideoID      uuid.UUID `gorm:"column:video_id;type:uuid;primaryKey"`
	CastMemberID uuid.UUID `gorm:"column:cast_member_id;type:uuid;primaryKey;index:idx_video_cast_members_cast_member_id"`
}

func (VideoCastMember) TableName() string {
	return "video_cast_members"
}
