package services

// Services defined in this package:
// - AuthService: login, token refresh/logout and the signup flow
// - ProfileService: profile reads/edits, directory filters and profile links
// - NotificationService: notification feed, badge count and visualization
// - ProjectService: projects, membership workflow, stars and links
// - DiscussionService: project discussions, their stars and replies
// - ChatService: chats, messages and read receipts
// - UniversityService: university and major name lists
